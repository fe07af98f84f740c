package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-dash/internal/adapter/geoip"
	httpadapter "github.com/couchcryptid/weather-dash/internal/adapter/http"
	"github.com/couchcryptid/weather-dash/internal/adapter/openweather"
	"github.com/couchcryptid/weather-dash/internal/adapter/sqlite"
	"github.com/couchcryptid/weather-dash/internal/config"
	"github.com/couchcryptid/weather-dash/internal/domain"
	"github.com/couchcryptid/weather-dash/internal/observability"
	"github.com/couchcryptid/weather-dash/internal/pipeline"
	"github.com/couchcryptid/weather-dash/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open state database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	if err := db.InitSchema(ctx); err != nil {
		logger.Error("failed to initialize state schema", "error", err)
		os.Exit(1)
	}

	// Device location lookup (feature-flagged via GEOIP_ENABLED).
	var locator domain.Locator
	if cfg.GeoIPEnabled {
		locator = geoip.NewLocator(cfg.GeoIPEndpoint, cfg.GeoIPTimeout, logger)
		logger.Info("geoip location enabled", "endpoint", cfg.GeoIPEndpoint, "timeout", cfg.GeoIPTimeout)
	} else {
		logger.Info("geoip location disabled")
	}

	provider := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.ProviderTimeout, metrics, logger)
	resolver := pipeline.New(provider, locator, logger, metrics)

	st := store.New(db, logger, metrics)
	if err := st.Rehydrate(ctx); err != nil {
		logger.Error("failed to rehydrate state", "error", err)
		os.Exit(1)
	}
	logger.Info("state rehydrated", "saved_locations", len(st.SavedLocations()))

	srv := httpadapter.NewServer(cfg.HTTPAddr, resolver, st, db, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := db.Close(); err != nil {
		logger.Error("state database close error", "error", err)
	}

	logger.Info("shutdown complete")
}
