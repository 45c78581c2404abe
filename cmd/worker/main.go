package main

import (
	"ModelHub/config"
	"ModelHub/internal/repo"
	"ModelHub/internal/storage"
	"ModelHub/internal/worker"
	"ModelHub/utils"
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config.InitConfig()
	utils.InitLogger(config.AppConfig.LogLevel)
	repo.InitDB()
	if config.AppConfig.RedisEnabled {
		repo.InitRedis()
	}
	storage.InitStorage()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("cleanup worker started")
	if err := worker.RunCleanupWorker(ctx); err != nil {
		log.Fatalf("cleanup worker stopped: %v", err)
	}
}
