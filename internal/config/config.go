package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration loaded from files, environment
// variables and command line flags.
type Config struct {
	Env     string  `mapstructure:"env"` // local, dev, production
	Log     Log     `mapstructure:"log"`
	Bank    Bank    `mapstructure:"bank"`
	UI      UI      `mapstructure:"ui"`
	Trivia  Trivia  `mapstructure:"trivia"`
	History History `mapstructure:"history"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// Bank points at an optional YAML or JSON question bank seeded on startup.
type Bank struct {
	Path string `mapstructure:"path"`
}

type UI struct {
	Color            string `mapstructure:"color"`
	MaxInvalidInputs int    `mapstructure:"max_invalid_inputs"`
}

type Trivia struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	Amount  int           `mapstructure:"amount"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type History struct {
	Enabled bool `mapstructure:"enabled"`
	Limit   int  `mapstructure:"limit"`
}

// Options controls where Load looks for its inputs. Zero values use the
// defaults a normal run needs.
type Options struct {
	ConfigPaths []string
	EnvFiles    []string
	Output      io.Writer
}

// Load reads configuration from .env files, config/config.yaml, QUIZ_*
// environment variables and args, in increasing priority.
func Load(args []string, opts Options) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	configPaths := opts.ConfigPaths
	if configPaths == nil {
		configPaths = []string{"./config"}
	}
	for _, path := range configPaths {
		v.AddConfigPath(path)
	}

	v.SetDefault("env", "local")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("bank.path", "")
	v.SetDefault("ui.color", ColorAuto)
	v.SetDefault("ui.max_invalid_inputs", 3)
	v.SetDefault("trivia.enabled", true)
	v.SetDefault("trivia.base_url", "https://opentdb.com/api.php")
	v.SetDefault("trivia.amount", 10)
	v.SetDefault("trivia.timeout", "5s")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.limit", 10)

	v.SetEnvPrefix("QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	flags := pflag.NewFlagSet("quiz-manager", pflag.ContinueOnError)
	if opts.Output != nil {
		flags.SetOutput(opts.Output)
	}
	flags.String("bank", "", "YAML or JSON question bank to load on startup")
	flags.String("color", ColorAuto, "color output: auto, always or never")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.Bool("no-trivia", false, "disable the Open Trivia DB import option")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	_ = v.BindPFlag("bank.path", flags.Lookup("bank"))
	_ = v.BindPFlag("ui.color", flags.Lookup("color"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if noTrivia, _ := flags.GetBool("no-trivia"); noTrivia {
		cfg.Trivia.Enabled = false
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	cfg.UI.Color = strings.ToLower(strings.TrimSpace(cfg.UI.Color))
	switch cfg.UI.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: ui.color %q (expected auto|always|never)", ErrInvalidConfig, cfg.UI.Color)
	}
	if cfg.UI.MaxInvalidInputs <= 0 {
		return fmt.Errorf("%w: ui.max_invalid_inputs must be positive", ErrInvalidConfig)
	}
	if cfg.Trivia.Amount <= 0 {
		return fmt.Errorf("%w: trivia.amount must be positive", ErrInvalidConfig)
	}
	if cfg.Trivia.Timeout <= 0 {
		return fmt.Errorf("%w: trivia.timeout must be positive", ErrInvalidConfig)
	}
	if cfg.History.Limit <= 0 {
		return fmt.Errorf("%w: history.limit must be positive", ErrInvalidConfig)
	}
	return nil
}
