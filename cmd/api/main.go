package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phonedeck/phonedeck-backend/api/routes"
	"github.com/phonedeck/phonedeck-backend/internal/catalog"
	"github.com/phonedeck/phonedeck-backend/internal/devices"
	"github.com/phonedeck/phonedeck-backend/internal/favorites"
	"github.com/phonedeck/phonedeck-backend/internal/products"
	"github.com/phonedeck/phonedeck-backend/internal/reservations"
	"github.com/phonedeck/phonedeck-backend/internal/reviews"
	"github.com/phonedeck/phonedeck-backend/internal/stores"
	"github.com/phonedeck/phonedeck-backend/internal/tables"
	"github.com/phonedeck/phonedeck-backend/pkg/config"
	"github.com/phonedeck/phonedeck-backend/pkg/db"
	"github.com/phonedeck/phonedeck-backend/pkg/logger"
	"github.com/phonedeck/phonedeck-backend/pkg/metrics"
	"github.com/phonedeck/phonedeck-backend/pkg/migrate"
	"github.com/phonedeck/phonedeck-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	searchMetrics := metrics.NewSearchMetrics(registry)

	gdb := dbClient.DB()
	deviceRepo := devices.NewRepository(gdb)
	productRepo := products.NewRepository(gdb)
	storeRepo := stores.NewRepository(gdb)

	svcs := routes.Services{
		Catalog:      catalog.NewService(catalog.NewRepository(gdb), deviceRepo, searchMetrics),
		Devices:      devices.NewService(deviceRepo),
		Stores:       stores.NewService(storeRepo),
		Products:     products.NewService(productRepo, deviceRepo, tables.NewRepository(gdb)),
		Tables:       tables.NewGormService(dbClient),
		Favorites:    favorites.NewService(favorites.NewRepository(gdb), productRepo),
		Reservations: reservations.NewService(reservations.NewRepository(gdb), productRepo),
		Reviews:      reviews.NewGormService(dbClient),
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, svcs),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
