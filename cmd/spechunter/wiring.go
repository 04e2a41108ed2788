package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/MikeSquared-Agency/SpecHunter/internal/api"
	"github.com/MikeSquared-Agency/SpecHunter/internal/config"
	"github.com/MikeSquared-Agency/SpecHunter/internal/discovery"
	"github.com/MikeSquared-Agency/SpecHunter/internal/session"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// parseLevel falls back to info for unknown names.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func catalogBackend(cfg *config.Config) string {
	if cfg.Database.URL != "" {
		return "postgres"
	}
	return "memory"
}

// openCatalog uses Postgres when a database URL is configured, migrating and
// seeding it, and the in-memory seed catalog otherwise.
func openCatalog(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Database.URL == "" {
		return store.NewMemoryStore(store.SeedCatalog()), nil
	}
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := db.Seed(ctx, store.SeedCatalog()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func openSessions(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Sessions.Backend {
	case config.SessionBackendRedis:
		rs, err := session.NewRedisStore(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.SessionTTL())
		if err != nil {
			return nil, err
		}
		return rs, nil
	case config.SessionBackendMemory, "":
		return session.NewMemoryStore(cfg.SessionTTL()), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Sessions.Backend)
	}
}

// newRateLimitStore shares rate limit counters through Redis when sessions
// already live there, so every replica enforces the same budget.
func newRateLimitStore(sessions session.Store, logger *slog.Logger) api.RateLimitStore {
	if rs, ok := sessions.(*session.RedisStore); ok {
		return api.NewRedisRateLimitStore(rs.Client(), logger)
	}
	return api.NewMemoryRateLimitStore()
}

type pinger interface {
	Ping(ctx context.Context) error
}

// healthChecks pings the backends that can go away at runtime.
func healthChecks(catalog store.Store, sessions session.Store) []api.HealthCheck {
	var checks []api.HealthCheck
	if p, ok := catalog.(pinger); ok {
		checks = append(checks, api.HealthCheck{Name: "postgres", Check: p.Ping})
	}
	if p, ok := sessions.(pinger); ok {
		checks = append(checks, api.HealthCheck{Name: "redis", Check: p.Ping})
	}
	return checks
}

func newDiscovery(cfg *config.Config) discovery.Client {
	if cfg.Discovery.Mode == config.DiscoveryModeHTTP {
		return discovery.NewHTTPClient(cfg.Discovery.URL, cfg.Discovery.Token, cfg.DiscoveryTimeout())
	}
	return discovery.NewMockClient(cfg.DiscoveryDelay(),
		discovery.WithPriceRange(cfg.Discovery.MinPrice, cfg.Discovery.MaxPrice))
}
