package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Gokul-1737/mk-glass-dashboard/api/routes"
	analyticsvc "github.com/Gokul-1737/mk-glass-dashboard/internal/analytics"
	authsvc "github.com/Gokul-1737/mk-glass-dashboard/internal/auth"
	exportsvc "github.com/Gokul-1737/mk-glass-dashboard/internal/export"
	productsvc "github.com/Gokul-1737/mk-glass-dashboard/internal/products"
	salesvc "github.com/Gokul-1737/mk-glass-dashboard/internal/sales"
	"github.com/Gokul-1737/mk-glass-dashboard/internal/views"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/auth/session"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/config"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/db"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/logger"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/metrics"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/migrate"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/redis"
)

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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	viewCache, err := views.NewCache(redisClient, cfg.Cache.ViewTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create view cache", err)
		os.Exit(1)
	}

	loc := cfg.Service.Location()
	productRepo := productsvc.NewRepository(dbClient.DB())
	saleRepo := salesvc.NewRepository(dbClient.DB())

	productService, err := productsvc.NewService(productRepo, viewCache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	saleService, err := salesvc.NewService(saleRepo, productRepo, viewCache, logg, loc)
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}

	analyticsService, err := analyticsvc.NewService(productRepo, saleRepo, viewCache, logg, loc)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpStats := metrics.NewHTTPMetrics(registry)

	exportService, err := exportsvc.NewService(analyticsService, saleRepo, httpStats, logg, loc)
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(cfg, sessionManager, redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	if err := analyticsService.Warm(context.Background()); err != nil {
		logg.Warn(context.Background(), fmt.Sprintf("warming analytics views: %v", err))
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
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Sessions:  sessionManager,
			HTTPStats: httpStats,
			Gatherer:  registry,
			Auth:      authService,
			Products:  productService,
			Sales:     saleService,
			Analytics: analyticsService,
			Export:    exportService,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		logg.Info(ctx, "shutting down api server")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "shutdown did not complete cleanly", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
