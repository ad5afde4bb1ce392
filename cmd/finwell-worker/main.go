package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pranithapadala/FinWell/internal/amqp"
	"github.com/pranithapadala/FinWell/internal/config"
	"github.com/pranithapadala/FinWell/internal/mirror"
	"github.com/pranithapadala/FinWell/internal/storage"
	"github.com/pranithapadala/FinWell/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting finwell-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if !cfg.MirrorConfigured() {
		logger.Error("Mirror worker needs GOOGLE_SPREADSHEET_ID")
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	sheetsClient, err := mirror.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets mirror", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets mirror initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mirrorWorker := worker.NewMirrorWorker(repo, sheetsClient)

	go func() {
		handler := func(msg *amqp.TransactionEventMessage) error {
			return mirrorWorker.HandleTransactionEvent(ctx, msg)
		}
		if err := amqpClient.ConsumeTransactionEvents(ctx, handler); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	// Give in-flight deliveries a moment to settle.
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
