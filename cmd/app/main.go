// @title RuinSim API
// @version 1.0
// @description Monte Carlo gambler's-ruin sweeps over win probabilities 0.01 to 0.49.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/RuinSim_Go/internal/config"
	"github.com/osse101/RuinSim_Go/internal/handler"
	"github.com/osse101/RuinSim_Go/internal/preset"
	"github.com/osse101/RuinSim_Go/internal/server"
	"github.com/osse101/RuinSim_Go/internal/simulation"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initLogger(cfg)
	handler.Version = cfg.Version

	for _, warning := range config.ValidateEnvWithWarnings(cfg) {
		slog.Warn("Configuration warning", "warning", warning)
	}

	catalog, err := preset.NewLoader().Load(cfg.PresetsPath)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}
	slog.Info("Presets loaded", "path", cfg.PresetsPath, "count", len(catalog.List()))

	store := simulation.NewResultStore(cfg.SweepCacheSize, cfg.SweepCacheTTL)
	svc := simulation.NewService(cfg.SimWorkers, store)

	presetsReady := handler.HealthCheckFunc(func(ctx context.Context) error {
		if len(catalog.List()) == 0 {
			return errors.New("no presets loaded")
		}
		return nil
	})

	srv := server.NewServer(cfg, svc, catalog, presetsReady)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	store.Clear()
	slog.Info("Server stopped")
	return nil
}
