// Package broker drives dashboard sessions: it loads session state, applies
// dashboard actions, persists the result and runs discovery lookups in the
// background.
package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/SpecHunter/internal/compare"
	"github.com/MikeSquared-Agency/SpecHunter/internal/config"
	"github.com/MikeSquared-Agency/SpecHunter/internal/dashboard"
	"github.com/MikeSquared-Agency/SpecHunter/internal/discovery"
	"github.com/MikeSquared-Agency/SpecHunter/internal/hermes"
	"github.com/MikeSquared-Agency/SpecHunter/internal/metrics"
	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
	"github.com/MikeSquared-Agency/SpecHunter/internal/session"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

// settleTimeout bounds the session write made after a lookup ends.
const settleTimeout = 5 * time.Second

// SessionView is a dashboard view tagged with its session.
type SessionView struct {
	SessionID uuid.UUID `json:"session_id"`
	dashboard.View
}

type lookup struct {
	runID  string
	cancel context.CancelFunc
}

type Broker struct {
	catalog  store.Store
	sessions session.Store
	finder   discovery.Client
	hermes   hermes.Client
	metrics  *metrics.Metrics
	scorer   *scoring.Scorer
	cfg      *config.Config
	logger   *slog.Logger

	// instanceID tags published catalog events so subscriptions skip them.
	instanceID string

	lookupsMu sync.Mutex
	lookups   map[uuid.UUID]lookup

	baseCtx    context.Context
	cancelBase context.CancelFunc
	stopOnce   sync.Once
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

func New(c store.Store, s session.Store, f discovery.Client, h hermes.Client, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) *Broker {
	if h == nil {
		h = hermes.Noop{}
	}
	baseCtx, cancel := context.WithCancel(context.Background())
	return &Broker{
		catalog:    c,
		sessions:   s,
		finder:     f,
		hermes:     h,
		metrics:    m,
		scorer:     scoring.NewScorer(cfg.Scoring.MaxReferencePrice),
		cfg:        cfg,
		logger:     logger,
		instanceID: uuid.NewString(),
		lookups:    make(map[uuid.UUID]lookup),
		baseCtx:    baseCtx,
		cancelBase: cancel,
		stopCh:     make(chan struct{}),
	}
}

func (b *Broker) Start(ctx context.Context) {
	if b.cfg.SweepInterval() > 0 {
		b.wg.Add(1)
		go b.sweepLoop(ctx)
	}
}

// Stop cancels running lookups and waits for every goroutine to exit.
func (b *Broker) Stop() {
	b.stopOnce.Do(func() {
		close(b.stopCh)
		b.cancelBase()
	})
	b.wg.Wait()
}

// Rank scores the whole catalog without touching any session.
func (b *Broker) Rank(ctx context.Context, w scoring.WeightConfig, query string) ([]scoring.RankedItem, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	items, err := b.catalog.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return b.scorer.Rank(items, w, query), nil
}

func (b *Broker) GetItem(ctx context.Context, id int64) (*store.Item, error) {
	return b.catalog.GetItem(ctx, id)
}

func (b *Broker) Explain(ctx context.Context, id int64, w scoring.WeightConfig) (*store.Item, scoring.Breakdown, error) {
	if err := w.Validate(); err != nil {
		return nil, scoring.Breakdown{}, err
	}
	item, err := b.catalog.GetItem(ctx, id)
	if err != nil {
		return nil, scoring.Breakdown{}, err
	}
	return item, b.scorer.Explain(item, w), nil
}

// AddItem appends a manually supplied item to the catalog.
func (b *Broker) AddItem(ctx context.Context, item *store.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	item.Source = store.SourceManual
	if err := b.catalog.AppendItem(ctx, item); err != nil {
		return fmt.Errorf("append item: %w", err)
	}
	b.metrics.CatalogAppended(item.Source)
	b.publish(hermes.SubjectCatalogAdded(item.ID), b.catalogEvent(item, uuid.Nil, ""))
	b.logger.Info("catalog item added", "item_id", item.ID, "name", item.Name)
	return nil
}

func (b *Broker) CreateSession(ctx context.Context) (*SessionView, error) {
	s, err := b.sessions.Create(ctx, dashboard.NewState(b.cfg.Scoring.Weights))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	b.metrics.SessionCreated()
	return b.render(ctx, s)
}

func (b *Broker) View(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	s, err := b.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.render(ctx, s)
}

// Apply runs a single dashboard action against the session.
func (b *Broker) Apply(ctx context.Context, id uuid.UUID, action dashboard.Action) (*SessionView, error) {
	s, err := b.sessions.Update(ctx, id, reduce(action))
	if err != nil {
		return nil, err
	}
	return b.render(ctx, s)
}

// ToggleCompare selects or deselects an item. Selecting requires the item to
// exist in the catalog.
func (b *Broker) ToggleCompare(ctx context.Context, id uuid.UUID, itemID int64) (*SessionView, error) {
	var selected bool
	s, err := b.sessions.Update(ctx, id, func(st dashboard.State) (dashboard.State, error) {
		if !st.Compare.Contains(itemID) {
			if _, err := b.catalog.GetItem(ctx, itemID); err != nil {
				return st, err
			}
		}
		next, err := dashboard.Reduce(st, dashboard.ToggleCompare{ItemID: itemID})
		if err != nil {
			return st, err
		}
		selected = next.Compare.Contains(itemID)
		return next, nil
	})
	switch {
	case errors.Is(err, compare.ErrCapacityExceeded):
		b.metrics.CompareToggled(metrics.ToggleRejected)
		return nil, err
	case err != nil:
		return nil, err
	}

	if selected {
		b.metrics.CompareToggled(metrics.ToggleAdded)
	} else {
		b.metrics.CompareToggled(metrics.ToggleRemoved)
	}
	b.publish(hermes.SubjectCompareToggled(id.String()), hermes.CompareToggledEvent{
		SessionID: id.String(),
		ItemID:    itemID,
		Selected:  selected,
		Selection: s.State.Compare.IDs(),
		Timestamp: time.Now().UTC(),
	})
	return b.render(ctx, s)
}

func (b *Broker) render(ctx context.Context, s *session.Session) (*SessionView, error) {
	items, err := b.catalog.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return &SessionView{SessionID: s.ID, View: dashboard.Render(s.State, items, b.scorer)}, nil
}

func (b *Broker) publish(subject string, data interface{}) {
	if err := b.hermes.Publish(subject, data); err != nil {
		b.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func reduce(action dashboard.Action) session.UpdateFunc {
	return func(s dashboard.State) (dashboard.State, error) {
		return dashboard.Reduce(s, action)
	}
}

func (b *Broker) catalogEvent(item *store.Item, sessionID uuid.UUID, query string) hermes.CatalogItemEvent {
	evt := hermes.CatalogItemEvent{
		ItemID:    item.ID,
		Brand:     item.Brand,
		Name:      item.Name,
		Category:  item.Category,
		Price:     item.Price,
		Source:    item.Source,
		Query:     query,
		Specs:     item.Specs,
		Scores:    scoresToMap(item.Scores),
		Timestamp: time.Now().UTC(),
		Origin:    b.instanceID,
	}
	if sessionID != uuid.Nil {
		evt.SessionID = sessionID.String()
	}
	return evt
}
