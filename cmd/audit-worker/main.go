package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"expenses/internal/config"
	"expenses/internal/events"
	"expenses/internal/log"
	"expenses/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logger := log.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auditor := worker.NewAuditor(logger)

	logger.Info("Audit worker starting", "queue", cfg.AMQPQueue)
	if err := run(ctx, cfg, auditor, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Audit worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Audit worker stopped")
}

// run consumes until ctx is cancelled, reconnecting with backoff whenever
// the broker connection drops.
func run(ctx context.Context, cfg *config.Config, auditor *worker.Auditor, logger *slog.Logger) error {
	attempt := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			attempt++
			wait := events.Backoff(attempt)
			logger.Warn("Broker connection failed, retrying",
				"error", err,
				"attempt", attempt,
				"retry_in", wait)
			if !sleep(ctx, wait) {
				return ctx.Err()
			}
			continue
		}
		attempt = 0

		err = client.Consume(ctx, func(ev *events.ExpenseEvent) error {
			return auditor.HandleEvent(ctx, ev)
		})
		client.Close()

		if errors.Is(err, context.Canceled) {
			return err
		}
		if err != nil && !events.IsConnectionError(err) {
			logger.Warn("Consume ended", "error", err)
		}

		attempt++
		wait := events.Backoff(attempt)
		logger.Info("Reconnecting to broker", "attempt", attempt, "retry_in", wait)
		if !sleep(ctx, wait) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
