package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/config"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/consumer"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/logger"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/queue/sqs"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if err := cfg.ValidateConsumer(); err != nil {
		panic(fmt.Sprintf("Invalid consumer config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting consumer service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("store", cfg.Service.Store))

	ctx := context.Background()

	repo, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open transaction store", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Error("Failed to close transaction store", zap.Error(err))
		}
	}()

	// Create tables and indexes if they do not exist
	if err := repo.InitSchema(ctx); err != nil {
		log.Fatal("Failed to initialize schema", zap.Error(err))
	}
	log.Info("Store schema initialized")

	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	c := consumer.NewConsumer(cfg, sqsClient, repo, log)

	// Start health check endpoint
	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if err := repo.Ping(r.Context()); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Consumer.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	consumerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Consumer starting")

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if err := c.Start(consumerCtx); err != nil {
			log.Error("Consumer error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down consumer gracefully")
	cancel()
	<-stopped
}
