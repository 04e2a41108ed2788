package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/SpecHunter/internal/api"
	"github.com/MikeSquared-Agency/SpecHunter/internal/broker"
	"github.com/MikeSquared-Agency/SpecHunter/internal/config"
	"github.com/MikeSquared-Agency/SpecHunter/internal/hermes"
	"github.com/MikeSquared-Agency/SpecHunter/internal/metrics"
)

func main() {
	configPath := flag.String("config", os.Getenv("SPECHUNTER_CONFIG"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog
	catalog, err := openCatalog(ctx, cfg)
	if err != nil {
		logger.Error("failed to open catalog", "error", err)
		os.Exit(1)
	}
	defer catalog.Close()
	logger.Info("catalog ready", "backend", catalogBackend(cfg))

	// Sessions
	sessions, err := openSessions(ctx, cfg)
	if err != nil {
		logger.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer sessions.Close()
	logger.Info("session store ready", "backend", cfg.Sessions.Backend, "ttl", cfg.SessionTTL())

	// Hermes (optional)
	var hermesClient hermes.Client = hermes.Noop{}
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Discovery
	finder := newDiscovery(cfg)
	logger.Info("discovery ready", "mode", cfg.Discovery.Mode)

	m := metrics.New(prometheus.DefaultRegisterer)

	// Broker
	b := broker.New(catalog, sessions, finder, hermesClient, m, cfg, logger)
	b.Start(ctx)
	defer b.Stop()
	if err := b.SetupSubscriptions(); err != nil {
		logger.Warn("failed to subscribe to catalog events", "error", err)
	}
	logger.Info("broker started", "sweep_interval", cfg.SweepInterval())

	// API server
	router := api.NewRouter(b, m, api.RouterConfig{
		DefaultWeights:     cfg.Scoring.Weights,
		AdminToken:         cfg.Server.AdminToken,
		RateLimitPerMinute: cfg.Server.RateLimit,
		TrustProxy:         cfg.Server.TrustProxy,
		RateLimitStore:     newRateLimitStore(sessions, logger),
	}, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(prometheus.DefaultGatherer, healthChecks(catalog, sessions)...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
