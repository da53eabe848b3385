package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"quiz-manager/internal/config"
)

func New(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.Log.Level))
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if output := strings.TrimSpace(cfg.Log.Output); output != "" {
		zapCfg.OutputPaths = []string{output}
	}

	return zapCfg.Build()
}
