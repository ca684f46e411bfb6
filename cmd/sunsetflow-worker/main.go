// Command sunsetflow-worker consumes domain events: it keeps provider
// balances current and exports monthly reports to Google Sheets.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mhzindev/sunsetflow/internal/amqp"
	"github.com/mhzindev/sunsetflow/internal/config"
	"github.com/mhzindev/sunsetflow/internal/export"
	"github.com/mhzindev/sunsetflow/internal/log"
	"github.com/mhzindev/sunsetflow/internal/storage"
	"github.com/mhzindev/sunsetflow/internal/store"
	"github.com/mhzindev/sunsetflow/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{Level: slog.LevelInfo, Component: log.ComponentWorker})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	result, err := storage.NewStore(store.Config{
		Type:         store.BackendType(cfg.StoreBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Store cleanup failed", "error", err)
		}
	}()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var exporter worker.ReportExporter
	if cfg.ExportEnabled() {
		e, err := export.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to build report exporter", "error", err)
			os.Exit(1)
		}
		exporter = e
		logger.Info("Report export enabled", "sheet", cfg.GoogleSheetName)
	} else {
		logger.Warn("Report export disabled, GOOGLE_SPREADSHEET_ID not set")
	}

	w := worker.NewEventWorker(result.Store, exporter)
	go w.RunPeriodic(ctx, cfg.RecalcInterval)

	logger.Info("Worker started", "queue", cfg.AMQPQueue, "recalc_interval", cfg.RecalcInterval.String())
	if err := client.Consume(ctx, w.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}
