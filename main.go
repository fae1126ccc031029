package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vit0-9/link_redirector/config"
	"github.com/vit0-9/link_redirector/pkg/logging"
	"github.com/vit0-9/link_redirector/pkg/store"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)

	linkStore, err := store.New(cfg.Store)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize lookup store")
	}

	app, err := NewApp(cfg, linkStore, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize application")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-quit
		logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := app.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("Shutdown did not complete cleanly")
		}
	}()

	if err := app.Start(); err != nil {
		logger.WithError(err).Fatal("Failed to start server")
	}
	<-done
	logger.Info("Server stopped")
}
