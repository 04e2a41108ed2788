package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/SpecHunter/internal/dashboard"
	"github.com/MikeSquared-Agency/SpecHunter/internal/discovery"
	"github.com/MikeSquared-Agency/SpecHunter/internal/hermes"
	"github.com/MikeSquared-Agency/SpecHunter/internal/metrics"
	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
	"github.com/MikeSquared-Agency/SpecHunter/internal/session"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

// StartDiscovery launches a lookup for the session's current search text.
// It returns as soon as the session is marked loading.
func (b *Broker) StartDiscovery(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	select {
	case <-b.stopCh:
		return nil, errors.New("broker stopped")
	default:
	}

	items, err := b.catalog.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	runID := uuid.NewString()
	s, err := b.sessions.Update(ctx, id, func(st dashboard.State) (dashboard.State, error) {
		return dashboard.Reduce(st, dashboard.StartDiscovery{RunID: runID, Matches: countMatches(items, st.Search)})
	})
	if err != nil {
		return nil, err
	}
	query := s.State.Discovery.Query

	var (
		lctx   context.Context
		cancel context.CancelFunc
	)
	if t := b.cfg.DiscoveryTimeout(); t > 0 {
		lctx, cancel = context.WithTimeout(b.baseCtx, t)
	} else {
		lctx, cancel = context.WithCancel(b.baseCtx)
	}
	b.lookupsMu.Lock()
	b.lookups[id] = lookup{runID: runID, cancel: cancel}
	b.lookupsMu.Unlock()

	b.metrics.DiscoveryStarted()
	b.wg.Add(1)
	go b.runDiscovery(lctx, id, runID, query)

	b.logger.Info("discovery started", "session_id", id, "run_id", runID, "query", query)
	return b.render(ctx, s)
}

// CancelDiscovery aborts the session's running lookup, if any, and clears
// the loading flag.
func (b *Broker) CancelDiscovery(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	b.lookupsMu.Lock()
	l, ok := b.lookups[id]
	b.lookupsMu.Unlock()
	if ok {
		l.cancel()
	}

	s, err := b.sessions.Update(ctx, id, reduce(dashboard.CancelDiscovery{}))
	if err != nil {
		return nil, err
	}
	return b.render(ctx, s)
}

func (b *Broker) runDiscovery(ctx context.Context, id uuid.UUID, runID, query string) {
	defer b.wg.Done()
	defer b.release(id, runID)
	start := time.Now()

	item, err := b.finder.Search(ctx, query)
	if err == nil {
		err = item.Validate()
	}
	if err == nil {
		item.Source = store.SourceDiscovery
		err = b.catalog.AppendItem(ctx, item)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", discovery.ErrLookupFailed, err)
	}

	settleCtx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()

	var action dashboard.Action
	outcome := metrics.OutcomeFound
	switch {
	case errors.Is(err, context.Canceled):
		outcome = metrics.OutcomeCancelled
		action = dashboard.CancelDiscovery{RunID: runID}
		b.logger.Info("discovery cancelled", "session_id", id, "run_id", runID)
	case err != nil:
		outcome = metrics.OutcomeFailed
		action = dashboard.FinishDiscovery{RunID: runID, Err: err}
		retryable := errors.Is(err, discovery.ErrLookupFailed)
		b.logger.Warn("discovery failed", "session_id", id, "run_id", runID, "query", query, "error", err)
		b.publish(hermes.SubjectDiscoveryFailed(id.String()), hermes.DiscoveryFailedEvent{
			SessionID: id.String(),
			Query:     query,
			Error:     err.Error(),
			Retryable: retryable,
			Timestamp: time.Now().UTC(),
		})
	default:
		action = dashboard.FinishDiscovery{RunID: runID, Item: item}
		b.metrics.CatalogAppended(item.Source)
		b.logger.Info("discovery found item", "session_id", id, "run_id", runID, "item_id", item.ID, "name", item.Name)
		b.publish(hermes.SubjectCatalogDiscovered(item.ID), b.catalogEvent(item, id, query))
	}
	b.metrics.DiscoveryFinished(outcome, time.Since(start).Seconds())

	if _, err := b.sessions.Update(settleCtx, id, reduce(action)); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			b.logger.Info("session gone before discovery settled", "session_id", id)
			return
		}
		b.logger.Error("failed to record discovery result", "session_id", id, "error", err)
	}
}

func countMatches(items []store.Item, search string) int {
	tokens := scoring.Tokenize(search)
	n := 0
	for i := range items {
		if scoring.MatchesTokens(&items[i], tokens) {
			n++
		}
	}
	return n
}

func (b *Broker) release(id uuid.UUID, runID string) {
	b.lookupsMu.Lock()
	defer b.lookupsMu.Unlock()
	if l, ok := b.lookups[id]; ok && l.runID == runID {
		l.cancel()
		delete(b.lookups, id)
	}
}

// InFlight reports how many lookups this process is running.
func (b *Broker) InFlight() int {
	b.lookupsMu.Lock()
	defer b.lookupsMu.Unlock()
	return len(b.lookups)
}
