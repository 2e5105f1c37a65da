package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ormakov/trip-comb/app/api"
	"github.com/ormakov/trip-comb/app/cache"
	"github.com/ormakov/trip-comb/app/cfg"
	"github.com/ormakov/trip-comb/app/collector"
	"github.com/ormakov/trip-comb/app/database"
	"github.com/ormakov/trip-comb/app/providers"
	"github.com/ormakov/trip-comb/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Trip Comb server", "version", appCfg.Version)

	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "schema_version", version, "dirty", dirty)

	configCache := providers.NewConfigCache(appCfg.ProvidersFile)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load provider configurations", "file", appCfg.ProvidersFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Provider configurations loaded",
		"file", appCfg.ProvidersFile,
		"configured", configCache.GetConfigCount(),
		"enabled", len(configCache.EnabledNames()))

	httpClient := &http.Client{Timeout: time.Duration(appCfg.AdapterTimeout) * time.Second}
	registry := providers.BuildRegistry(configCache, httpClient, appCfg.UserAgent)

	planCollector, err := collector.New(registry, configCache,
		appCfg.MaxConcurrency, time.Duration(appCfg.AdapterTimeout)*time.Second)
	if err != nil {
		slog.Error("Failed to initialize collector", "error", err)
		os.Exit(1)
	}

	planRepo := database.NewPlanRepository(db)

	// Recommendation cache is optional; the planner keeps working
	// without it, only slower.
	var planCache cache.RecommendationCache
	if appCfg.RedisAddr != "" {
		redisCache, err := cache.NewCache(appCfg.RedisAddr)
		if err != nil {
			slog.Warn("Recommendation cache disabled", "addr", appCfg.RedisAddr, "error", err)
		} else {
			defer redisCache.Close()
			planCache = redisCache
			slog.Info("Recommendation cache enabled", "addr", appCfg.RedisAddr, "ttl_minutes", appCfg.CacheTTLMinutes)
		}
	}

	scheduler := tasks.NewScheduler(planRepo)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(configCache, registry, planCollector, planRepo,
		planCache, time.Duration(appCfg.CacheTTLMinutes)*time.Minute,
		scheduler, httpClient, appCfg.UserAgent, appCfg.TopActivities)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Trip Comb server shutdown complete")
}
