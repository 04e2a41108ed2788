// Package discovery looks up products that are missing from the catalog.
package discovery

import (
	"context"
	"errors"
	"strings"

	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

var (
	ErrLookupFailed = errors.New("lookup failed")
	ErrEmptyQuery   = errors.New("empty query")
)

// Client finds a single product for a free-text query. Implementations must
// return promptly when ctx is cancelled.
type Client interface {
	Search(ctx context.Context, query string) (*store.Item, error)
}

const (
	CategoryPhone   = "Flagship Phone"
	CategoryDesktop = "Custom Desktop"
	CategoryLaptop  = "Imported Laptop"
)

var (
	phoneKeywords   = []string{"iphone", "samsung"}
	desktopKeywords = []string{"pc", "desktop"}
)

// Classify guesses a category from keywords in the query. Phone keywords win
// over desktop keywords; anything else is a laptop.
func Classify(query string) string {
	q := strings.ToLower(query)
	switch {
	case containsAny(q, phoneKeywords):
		return CategoryPhone
	case containsAny(q, desktopKeywords):
		return CategoryDesktop
	default:
		return CategoryLaptop
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
