package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
)

const (
	DiscoveryModeMock = "mock"
	DiscoveryModeHTTP = "http"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Hermes    HermesConfig    `yaml:"hermes"`
	Sessions  SessionsConfig  `yaml:"sessions"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
	RateLimit   int    `yaml:"rate_limit_per_minute"`

	// TrustProxy takes the client address from X-Forwarded-For or
	// X-Real-IP. Only enable it behind a proxy that sets those headers.
	TrustProxy bool `yaml:"trust_proxy"`
}

// DatabaseConfig selects the PostgreSQL catalog store when URL is set.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// HermesConfig enables event publishing when URL is set.
type HermesConfig struct {
	URL string `yaml:"url"`
}

type SessionsConfig struct {
	Backend         string `yaml:"backend"`
	TTLMinutes      int    `yaml:"ttl_minutes"`
	SweepIntervalMs int    `yaml:"sweep_interval_ms"`
}

type DiscoveryConfig struct {
	Mode      string `yaml:"mode"`
	URL       string `yaml:"url"`
	Token     string `yaml:"token"`
	TimeoutMs int    `yaml:"timeout_ms"`
	DelayMs   int    `yaml:"delay_ms"`
	MinPrice  int    `yaml:"min_price"`
	MaxPrice  int    `yaml:"max_price"`
}

type ScoringConfig struct {
	Weights           scoring.WeightConfig `yaml:"weights"`
	MaxReferencePrice float64              `yaml:"max_reference_price"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Sessions.TTLMinutes) * time.Minute
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Sessions.SweepIntervalMs) * time.Millisecond
}

func (c *Config) DiscoveryDelay() time.Duration {
	return time.Duration(c.Discovery.DelayMs) * time.Millisecond
}

func (c *Config) DiscoveryTimeout() time.Duration {
	return time.Duration(c.Discovery.TimeoutMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
			RateLimit:   600,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Sessions: SessionsConfig{
			Backend:         SessionBackendMemory,
			TTLMinutes:      60,
			SweepIntervalMs: 60000,
		},
		Discovery: DiscoveryConfig{
			Mode:      DiscoveryModeMock,
			TimeoutMs: 10000,
			DelayMs:   1500,
			MinPrice:  25000,
			MaxPrice:  45000,
		},
		Scoring: ScoringConfig{
			Weights:           scoring.DefaultWeights(),
			MaxReferencePrice: scoring.DefaultMaxReferencePrice,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := c.Scoring.Weights.Validate(); err != nil {
		return fmt.Errorf("scoring.weights: %w", err)
	}
	if c.Scoring.MaxReferencePrice <= 0 {
		return fmt.Errorf("scoring.max_reference_price must be positive, got %v", c.Scoring.MaxReferencePrice)
	}
	switch c.Discovery.Mode {
	case DiscoveryModeMock:
	case DiscoveryModeHTTP:
		if c.Discovery.URL == "" {
			return fmt.Errorf("discovery.url is required in %q mode", DiscoveryModeHTTP)
		}
	default:
		return fmt.Errorf("unknown discovery.mode %q", c.Discovery.Mode)
	}
	switch c.Sessions.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown sessions.backend %q", c.Sessions.Backend)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SPECHUNTER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("SPECHUNTER_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("SPECHUNTER_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("SPECHUNTER_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("SPECHUNTER_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SPECHUNTER_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SPECHUNTER_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("SPECHUNTER_SESSION_BACKEND"); v != "" {
		cfg.Sessions.Backend = v
	}
	if v := os.Getenv("SPECHUNTER_SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sessions.TTLMinutes = n
		}
	}
	if v := os.Getenv("SPECHUNTER_DISCOVERY_MODE"); v != "" {
		cfg.Discovery.Mode = v
	}
	if v := os.Getenv("SPECHUNTER_DISCOVERY_URL"); v != "" {
		cfg.Discovery.URL = v
	}
	if v := os.Getenv("SPECHUNTER_DISCOVERY_TOKEN"); v != "" {
		cfg.Discovery.Token = v
	}
	if v := os.Getenv("SPECHUNTER_DISCOVERY_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Discovery.DelayMs = n
		}
	}
	if v := os.Getenv("SPECHUNTER_MAX_REFERENCE_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scoring.MaxReferencePrice = f
		}
	}
	if v := os.Getenv("SPECHUNTER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
