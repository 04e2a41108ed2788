package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/SpecHunter/internal/broker"
	"github.com/MikeSquared-Agency/SpecHunter/internal/dashboard"
	"github.com/MikeSquared-Agency/SpecHunter/internal/metrics"
	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

// Service is the part of the broker the HTTP layer drives.
type Service interface {
	Rank(ctx context.Context, w scoring.WeightConfig, query string) ([]scoring.RankedItem, error)
	GetItem(ctx context.Context, id int64) (*store.Item, error)
	Explain(ctx context.Context, id int64, w scoring.WeightConfig) (*store.Item, scoring.Breakdown, error)
	AddItem(ctx context.Context, item *store.Item) error

	CreateSession(ctx context.Context) (*broker.SessionView, error)
	View(ctx context.Context, id uuid.UUID) (*broker.SessionView, error)
	Apply(ctx context.Context, id uuid.UUID, action dashboard.Action) (*broker.SessionView, error)
	ToggleCompare(ctx context.Context, id uuid.UUID, itemID int64) (*broker.SessionView, error)
	StartDiscovery(ctx context.Context, id uuid.UUID) (*broker.SessionView, error)
	CancelDiscovery(ctx context.Context, id uuid.UUID) (*broker.SessionView, error)
}

const healthTimeout = 2 * time.Second

type RouterConfig struct {
	DefaultWeights     scoring.WeightConfig
	AdminToken         string
	RateLimitPerMinute int
	TrustProxy         bool

	// RateLimitStore defaults to an in-process store.
	RateLimitStore RateLimitStore
}

func NewRouter(svc Service, m *metrics.Metrics, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	if cfg.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(RequestLogger(logger))
	r.Use(InstrumentRequests(m))
	if cfg.RateLimitPerMinute > 0 {
		limits := cfg.RateLimitStore
		if limits == nil {
			limits = NewMemoryRateLimitStore()
		}
		r.Use(RateLimitMiddleware(limits, cfg.RateLimitPerMinute))
	}

	products := NewProductsHandler(svc, cfg.DefaultWeights)
	sessions := NewSessionsHandler(svc)
	catalog := NewCatalogHandler(svc)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", products.List)
		r.Get("/products/{id}", products.Get)
		r.Get("/products/{id}/explain", products.Explain)

		r.Post("/sessions", sessions.Create)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", sessions.Get)
			r.Put("/weights", sessions.SetWeights)
			r.Put("/search", sessions.SetSearch)
			r.Post("/compare/{item_id}", sessions.ToggleCompare)
			r.Delete("/compare", sessions.ClearCompare)
			r.Post("/discover", sessions.StartDiscovery)
			r.Delete("/discover", sessions.CancelDiscovery)
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Post("/catalog", catalog.Add)
		})
	})

	return r
}

// HealthCheck is a named dependency check reported by /health.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewMetricsRouter serves /health and the Prometheus scrape endpoint for g.
// /health answers 503 when any check fails.
func NewMetricsRouter(g prometheus.Gatherer, checks ...HealthCheck) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		failed := map[string]string{}
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				failed[c.Name] = err.Error()
			}
		}
		if len(failed) > 0 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "degraded", "failed": failed})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
