package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"example.com/notes-store/internal/config"
	"example.com/notes-store/internal/db"
	"example.com/notes-store/internal/logging"
	"example.com/notes-store/internal/notes"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("notes API stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := cfg.DBOptions()
	repo := notes.NewRepository(func(ctx context.Context) (*db.DB, error) {
		return db.Open(ctx, opts)
	}, notes.WithLogger(log))
	defer repo.Close()

	// Connect up front so a bad path fails at startup rather than on the first request.
	if err := repo.Connect(ctx); err != nil {
		return err
	}

	return notes.NewHandlers(repo, log).Serve(ctx, cfg.HTTPAddr)
}
