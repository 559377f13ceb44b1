package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/docs"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/config"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/handler"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/logger"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/service"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/store"
)

// @title Customer Transaction Chatbot API
// @version 1.0
// @description Answer questions about customer transactions in plain English
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
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

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort),
		zap.String("store", cfg.Service.Store))

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.Host

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

	chatService := service.NewChatService(repo, log)

	h := handler.NewHandler(chatService, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Service.APIPort),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API server starting", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down API server gracefully")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down API server", zap.Error(err))
	}
}
