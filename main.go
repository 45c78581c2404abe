package main

import (
	"ModelHub/config"
	"ModelHub/internal/repo"
	"ModelHub/internal/service"
	"ModelHub/internal/storage"
	"ModelHub/internal/task"
	"ModelHub/router"
	"ModelHub/utils"
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main initializes services and starts the HTTP server.
func main() {
	config.InitConfig()
	utils.InitLogger(config.AppConfig.LogLevel)
	repo.InitDB()
	if config.AppConfig.RedisEnabled {
		repo.InitRedis()
	}
	storage.InitStorage()
	if config.AppConfig.CleanupQueueEnabled {
		service.Cleanup = task.QueueScheduler{}
	}

	srv := &http.Server{
		Addr:    config.AppConfig.HTTPAddr,
		Handler: router.InitRouter(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown", "error", err)
	}
}
