package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"productos/internal/config"
	"productos/internal/logger"
	"productos/internal/server"

	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(".env")
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	// --- Store, broker and routes ---
	// A store that is down at startup does not stop the listener.
	app := server.Setup(context.Background(), cfg, log)
	defer func() {
		if err := app.Close(); err != nil {
			log.WithError(err).Error("Error closing resources")
		}
	}()

	// --- Start HTTP Server ---
	log.Infof("REST API en el puerto %s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Fiber.Listen(cfg.Addr()); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	if err := app.Fiber.Shutdown(); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	log.Info("Server gracefully stopped")
}
