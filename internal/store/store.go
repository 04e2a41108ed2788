package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrInvalidItem  = errors.New("invalid item")
)

const (
	MinScore = 0.0
	MaxScore = 10.0
)

// Scores holds the five fixed quality dimensions, each on a 0–10 scale.
type Scores struct {
	Performance float64 `json:"performance"`
	Battery     float64 `json:"battery"`
	Portability float64 `json:"portability"`
	Display     float64 `json:"display"`
	Features    float64 `json:"features"`
}

type Item struct {
	ID       int64             `json:"id"`
	Brand    string            `json:"brand"`
	Name     string            `json:"name"`
	Price    float64           `json:"price"`
	Category string            `json:"category"`
	Specs    map[string]string `json:"specs"`
	Scores   Scores            `json:"scores"`
	Source   string            `json:"source,omitempty"`
}

const (
	SourceCatalog   = "catalog"
	SourceDiscovery = "discovery"
	SourceManual    = "manual"
	SourceMirror    = "mirror"
)

// Validate checks the fields a caller may supply when appending an item.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if i.Price < 0 {
		return fmt.Errorf("%w: price %v is negative", ErrInvalidItem, i.Price)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"performance", i.Scores.Performance},
		{"battery", i.Scores.Battery},
		{"portability", i.Scores.Portability},
		{"display", i.Scores.Display},
		{"features", i.Scores.Features},
	} {
		if f.v < MinScore || f.v > MaxScore {
			return fmt.Errorf("%w: score %s=%v outside [%v,%v]", ErrInvalidItem, f.name, f.v, MinScore, MaxScore)
		}
	}
	return nil
}

// SpecLabels returns the spec labels in sorted order.
func (i *Item) SpecLabels() []string {
	labels := make([]string, 0, len(i.Specs))
	for k := range i.Specs {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return labels
}

// Store is the catalog: the static seed followed by appended items, in
// insertion order. Items are never updated or removed.
type Store interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id int64) (*Item, error)
	AppendItem(ctx context.Context, item *Item) error
	Close() error
}
