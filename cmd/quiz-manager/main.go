package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"quiz-manager/internal/cli"
	"quiz-manager/internal/config"
	"quiz-manager/internal/logger"
	"quiz-manager/internal/opentdb"
	"quiz-manager/internal/quiz"
	"quiz-manager/internal/quiz/sqlite"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args, config.Options{Output: stderr})
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	store := quiz.NewStore(log)
	if cfg.Bank.Path != "" {
		questions, err := quiz.LoadBank(cfg.Bank.Path)
		if err != nil {
			return fmt.Errorf("load question bank: %w", err)
		}
		store.AddAll(questions)
		log.Info("question bank loaded", zap.String("path", cfg.Bank.Path), zap.Int("questions", len(questions)))
	}

	var history quiz.HistoryRepository
	if cfg.History.Enabled {
		sqliteStore, err := sqlite.NewSQLiteStore("")
		if err != nil {
			return fmt.Errorf("open play history: %w", err)
		}
		defer sqliteStore.Close()
		history = sqliteStore
	}

	opts := cli.Options{
		Session:          quiz.NewSession(store, history, log),
		Logger:           log,
		ColorMode:        cfg.UI.Color,
		MaxInvalidInputs: cfg.UI.MaxInvalidInputs,
		TriviaAmount:     cfg.Trivia.Amount,
		HistoryLimit:     cfg.History.Limit,
	}
	if cfg.Trivia.Enabled {
		opts.Trivia = opentdb.NewClientWithURL(&http.Client{Timeout: cfg.Trivia.Timeout}, cfg.Trivia.BaseURL)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Run(ctx, stdin, stdout, opts)
}
