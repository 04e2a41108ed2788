// Package session persists dashboard state per client session.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/SpecHunter/internal/dashboard"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID        uuid.UUID       `json:"id"`
	State     dashboard.State `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UpdateFunc derives the next state. Returning an error aborts the update
// and leaves the stored session untouched.
type UpdateFunc func(dashboard.State) (dashboard.State, error)

type Store interface {
	Create(ctx context.Context, state dashboard.State) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	// Update applies fn atomically with respect to other updates of the
	// same session.
	Update(ctx context.Context, id uuid.UUID, fn UpdateFunc) (*Session, error)
	// Sweep drops sessions idle for longer than the store's TTL and reports
	// how many were removed.
	Sweep(ctx context.Context) (int, error)
	Close() error
}
