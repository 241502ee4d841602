package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/skillbridge/api"
	"github.com/garnizeh/skillbridge/internal/config"
	applog "github.com/garnizeh/skillbridge/internal/log"
	"github.com/garnizeh/skillbridge/internal/storage"
	"golang.org/x/sync/errgroup"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out, closeLog, err := applog.Output(cfg.Log, os.Stdout)
	if err != nil {
		return fmt.Errorf("log output: %w", err)
	}
	defer closeLog()

	logger, err := applog.New(out, cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	api.SetLogger(logger)

	logger.Info("starting SkillBridge server", slog.String("version", version), slog.String("build_time", buildTime))

	ctx := context.Background()

	// Open storage; seeding runs before the listener starts
	store, err := storage.Open(ctx, cfg, logger, cfg.SeedOnStart)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("error closing storage", slog.Any("err", err))
		}
	}()

	handler := api.SetupRoutes(cfg, version, buildTime, store)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Wait for interrupt signal or a listener failure
		<-gctx.Done()
		logger.Info("shutting down server")

		// Give outstanding requests 30 seconds to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}
