// Command sunsetflow runs the tenant-scoped financial API.
package main

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mhzindev/sunsetflow/internal/amqp"
	"github.com/mhzindev/sunsetflow/internal/config"
	"github.com/mhzindev/sunsetflow/internal/http"
	"github.com/mhzindev/sunsetflow/internal/log"
	"github.com/mhzindev/sunsetflow/internal/services"
	"github.com/mhzindev/sunsetflow/internal/storage"
	"github.com/mhzindev/sunsetflow/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{Level: slog.LevelInfo, Component: log.ComponentApp})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
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

	var bus services.Publisher = services.NopPublisher{}
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		bus = client
	} else {
		logger.Warn("AMQP_URL not set, domain events will not be published")
	}

	server := http.NewServer(cfg, result.Store, bus)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "addr", server.Addr, "backend", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	case err := <-errCh:
		logger.Error("HTTP server failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
