package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hvaillant/cinewatch/internal/api"
	"github.com/hvaillant/cinewatch/internal/api/middleware"
	"github.com/hvaillant/cinewatch/internal/config"
	"github.com/hvaillant/cinewatch/internal/scheduler"
	"github.com/hvaillant/cinewatch/internal/services/fileindex"
	"github.com/hvaillant/cinewatch/internal/services/tmdb"
	"github.com/hvaillant/cinewatch/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting cinewatch")

	// 3. Initialize services
	catalogClient, err := tmdb.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize TMDB client: %w", err)
	}
	logger.Info("TMDB client initialized")

	fileIndexClient, err := fileindex.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize file-index client: %w", err)
	}
	logger.Info("File-index client initialized")

	// 4. Initialize scheduler
	sched := scheduler.NewScheduler(fileIndexClient, catalogClient, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 5. Initialize HTTP server
	limiter := middleware.NewFixedWindow(cfg.RateLimitRequests, cfg.RateLimitWindow)
	server := api.NewServer(cfg, fileIndexClient, catalogClient, limiter, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 6. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("cinewatch is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("cinewatch stopped")
	return nil
}
