package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func isolatedOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		ConfigPaths: []string{t.TempDir()},
		EnvFiles:    []string{filepath.Join(t.TempDir(), ".env")},
		Output:      io.Discard,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, isolatedOptions(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Env != "local" || cfg.Log.Level != "warn" || cfg.Log.Output != "stderr" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.UI.Color != ColorAuto || cfg.UI.MaxInvalidInputs != 3 {
		t.Fatalf("unexpected ui defaults: %+v", cfg.UI)
	}
	if !cfg.Trivia.Enabled || cfg.Trivia.Amount != 10 || cfg.Trivia.Timeout != 5*time.Second {
		t.Fatalf("unexpected trivia defaults: %+v", cfg.Trivia)
	}
	if !cfg.History.Enabled || cfg.History.Limit != 10 {
		t.Fatalf("unexpected history defaults: %+v", cfg.History)
	}
	if cfg.Bank.Path != "" {
		t.Fatalf("expected no bank by default, got %q", cfg.Bank.Path)
	}
}

func TestLoadConfigFileEnvAndFlags(t *testing.T) {
	opts := isolatedOptions(t)
	configFile := filepath.Join(opts.ConfigPaths[0], "config.yaml")
	payload := `env: dev
ui:
  color: never
  max_invalid_inputs: 5
trivia:
  amount: 20
  timeout: 2s
history:
  limit: 3
`
	if err := os.WriteFile(configFile, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("QUIZ_TRIVIA_AMOUNT", "7")

	cfg, err := Load([]string{"--bank", "questions.yml", "--log-level", "debug"}, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Env != "dev" || cfg.UI.Color != ColorNever || cfg.UI.MaxInvalidInputs != 5 {
		t.Fatalf("config file values not applied: %+v", cfg)
	}
	if cfg.Trivia.Amount != 7 {
		t.Fatalf("expected env to override file amount, got %d", cfg.Trivia.Amount)
	}
	if cfg.Trivia.Timeout != 2*time.Second || cfg.History.Limit != 3 {
		t.Fatalf("unexpected values: %+v", cfg)
	}
	if cfg.Bank.Path != "questions.yml" || cfg.Log.Level != "debug" {
		t.Fatalf("flags not applied: bank=%q level=%q", cfg.Bank.Path, cfg.Log.Level)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	opts := isolatedOptions(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("QUIZ_HISTORY_LIMIT=4\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	opts.EnvFiles = []string{envFile}
	t.Cleanup(func() { _ = os.Unsetenv("QUIZ_HISTORY_LIMIT") })

	cfg, err := Load(nil, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.History.Limit != 4 {
		t.Fatalf("expected history limit from .env, got %d", cfg.History.Limit)
	}
}

func TestLoadNoTriviaFlag(t *testing.T) {
	cfg, err := Load([]string{"--no-trivia"}, isolatedOptions(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Trivia.Enabled {
		t.Fatalf("expected trivia disabled")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "color", args: []string{"--color", "rainbow"}},
		{name: "amount", env: map[string]string{"QUIZ_TRIVIA_AMOUNT": "0"}},
		{name: "inputs", env: map[string]string{"QUIZ_UI_MAX_INVALID_INPUTS": "-1"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			_, err := Load(tc.args, isolatedOptions(t))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadUnknownFlag(t *testing.T) {
	if _, err := Load([]string{"--nope"}, isolatedOptions(t)); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestLoadHelpFlag(t *testing.T) {
	var usage strings.Builder
	opts := isolatedOptions(t)
	opts.Output = &usage

	_, err := Load([]string{"--help"}, opts)
	if !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("expected pflag.ErrHelp, got %v", err)
	}
	if !strings.Contains(usage.String(), "--bank") {
		t.Fatalf("expected usage to list flags, got %q", usage.String())
	}
}
