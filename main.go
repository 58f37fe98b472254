package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/events"
	"productapi/internal/logger"
	"productapi/internal/metrics"
	"productapi/internal/server"
	"productapi/pkg/rabbitmq"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	// --- Storage ---
	store, err := server.OpenStore(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	if cfg.Database.Seed {
		if err := database.SeedProducts(context.Background(), store.Products, log); err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
	}

	// --- Product events (optional) ---
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue}, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				log.Warn("failed to close RabbitMQ client", zap.Error(err))
			}
		}()

		publisher = events.NewAMQPPublisher(mqClient)
		if err := mqClient.Consume("productapi-audit", events.LogHandler(log)); err != nil {
			log.Error("failed to start RabbitMQ consumer", zap.Error(err))
		}
	} else {
		log.Info("RABBITMQ_URL not set, product events disabled")
	}

	// --- HTTP ---
	app, err := server.New(server.Deps{
		Config:    cfg,
		Log:       log,
		Store:     store,
		Publisher: publisher,
		Metrics:   metrics.New(),
	})
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.App.Port), zap.String("env", cfg.App.Env))
		listenErr <- app.Listen(cfg.App.Port)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
	return nil
}
