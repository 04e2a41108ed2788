// Package dashboard holds the per-user dashboard state and the pure
// transitions applied to it. Nothing here performs I/O; the broker package
// loads state, applies actions and persists the result.
package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/SpecHunter/internal/compare"
	"github.com/MikeSquared-Agency/SpecHunter/internal/discovery"
	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

var (
	ErrDiscoveryInFlight = errors.New("discovery already in flight")
	ErrCatalogMatch      = errors.New("search already matches the catalog")
)

// DiscoveryStatus tracks the single lookup a dashboard may have running.
type DiscoveryStatus struct {
	Loading     bool   `json:"loading"`
	RunID       string `json:"run_id,omitempty"`
	Query       string `json:"query,omitempty"`
	Error       string `json:"error,omitempty"`
	Retryable   bool   `json:"retryable,omitempty"`
	LastFoundID int64  `json:"last_found_id,omitempty"`
}

type State struct {
	Weights   scoring.WeightConfig `json:"weights"`
	Search    string               `json:"search"`
	Compare   compare.Set          `json:"compare"`
	Discovery DiscoveryStatus      `json:"discovery"`
}

func NewState(w scoring.WeightConfig) State {
	return State{Weights: w}
}

// Action is a single state transition.
type Action interface {
	apply(State) (State, error)
}

// Reduce applies a to s. On error the returned state equals s.
func Reduce(s State, a Action) (State, error) {
	next, err := a.apply(s)
	if err != nil {
		return s, err
	}
	return next, nil
}

type SetWeights struct{ Weights scoring.WeightConfig }

func (a SetWeights) apply(s State) (State, error) {
	if err := a.Weights.Validate(); err != nil {
		return s, err
	}
	s.Weights = a.Weights
	return s, nil
}

type SetSearch struct{ Text string }

func (a SetSearch) apply(s State) (State, error) {
	s.Search = a.Text
	return s, nil
}

// ToggleCompare selects or deselects one item. The caller checks that the
// item exists.
type ToggleCompare struct{ ItemID int64 }

func (a ToggleCompare) apply(s State) (State, error) {
	next, err := s.Compare.Toggle(a.ItemID)
	if err != nil {
		return s, err
	}
	s.Compare = next
	return s, nil
}

type ClearCompare struct{}

func (ClearCompare) apply(s State) (State, error) {
	s.Compare = s.Compare.Clear()
	return s, nil
}

// StartDiscovery marks a lookup for the current search text as running.
// RunID identifies the lookup so that a late result from a cancelled run
// cannot overwrite a newer one. Matches is the number of catalog items the
// search text already matches; lookups only run for text that matches none.
type StartDiscovery struct {
	RunID   string
	Matches int
}

func (a StartDiscovery) apply(s State) (State, error) {
	if s.Discovery.Loading {
		return s, fmt.Errorf("query %q: %w", s.Discovery.Query, ErrDiscoveryInFlight)
	}
	q := strings.TrimSpace(s.Search)
	if q == "" {
		return s, discovery.ErrEmptyQuery
	}
	if a.Matches > 0 {
		return s, fmt.Errorf("query %q matches %d items: %w", q, a.Matches, ErrCatalogMatch)
	}
	s.Discovery = DiscoveryStatus{Loading: true, RunID: a.RunID, Query: q, LastFoundID: s.Discovery.LastFoundID}
	return s, nil
}

// FinishDiscovery records the outcome of a lookup. Item is the appended
// catalog entry on success. A non-empty RunID that does not match the
// running lookup leaves the state unchanged.
type FinishDiscovery struct {
	RunID string
	Item  *store.Item
	Err   error
}

func (a FinishDiscovery) apply(s State) (State, error) {
	if !s.Discovery.owns(a.RunID) {
		return s, nil
	}
	status := DiscoveryStatus{Query: s.Discovery.Query, LastFoundID: s.Discovery.LastFoundID}
	switch {
	case a.Err != nil:
		status.Error = a.Err.Error()
		status.Retryable = errors.Is(a.Err, discovery.ErrLookupFailed)
	case a.Item != nil:
		status.LastFoundID = a.Item.ID
	}
	s.Discovery = status
	return s, nil
}

// CancelDiscovery stops tracking the running lookup. An empty RunID cancels
// whatever is running, which also clears a loading flag left behind by a
// restarted process.
type CancelDiscovery struct{ RunID string }

func (a CancelDiscovery) apply(s State) (State, error) {
	if !s.Discovery.owns(a.RunID) {
		return s, nil
	}
	s.Discovery.Loading = false
	s.Discovery.RunID = ""
	return s, nil
}

func (d DiscoveryStatus) owns(runID string) bool {
	return runID == "" || runID == d.RunID
}
