package discovery

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

const (
	DefaultMockDelay    = 1500 * time.Millisecond
	DefaultMockMinPrice = 25000
	DefaultMockMaxPrice = 45000
	mockBrand           = "AI Found"
)

// MockClient fabricates a plausible item after a fixed delay. It never fails
// except on cancellation or an empty query.
type MockClient struct {
	delay    time.Duration
	minPrice int
	maxPrice int
	now      func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

type MockOption func(*MockClient)

func WithPriceRange(min, max int) MockOption {
	return func(c *MockClient) {
		c.minPrice, c.maxPrice = min, max
	}
}

func WithRand(rng *rand.Rand) MockOption {
	return func(c *MockClient) { c.rng = rng }
}

func WithClock(now func() time.Time) MockOption {
	return func(c *MockClient) { c.now = now }
}

func NewMockClient(delay time.Duration, opts ...MockOption) *MockClient {
	c := &MockClient{
		delay:    delay,
		minPrice: DefaultMockMinPrice,
		maxPrice: DefaultMockMaxPrice,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxPrice <= c.minPrice {
		c.maxPrice = c.minPrice + 1
	}
	return c
}

func (c *MockClient) Search(ctx context.Context, query string) (*store.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("mock lookup %q: %w", query, ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("mock lookup %q: %w", query, err)
	}

	return c.fabricate(query), nil
}

func (c *MockClient) fabricate(query string) *store.Item {
	category := Classify(query)
	// desktop specs follow the keywords even when the category says phone
	desktop := containsAny(strings.ToLower(query), desktopKeywords)

	c.mu.Lock()
	price := c.minPrice + c.rng.Intn(c.maxPrice-c.minPrice)
	c.mu.Unlock()

	item := &store.Item{
		ID:       c.now().UnixMilli(),
		Brand:    mockBrand,
		Name:     query + " (AI Result)",
		Price:    float64(price),
		Category: category,
		Source:   store.SourceDiscovery,
		Specs: map[string]string{
			"cpu":     "AI Selected CPU",
			"ram":     "16GB/32GB",
			"storage": "1TB Cloud",
			"battery": "High Cap",
			"weight":  "Unknown",
			"screen":  "AI Display",
		},
		Scores: store.Scores{Performance: 8.5, Battery: 7.5, Portability: 6.0, Display: 8.0, Features: 9.0},
	}
	if desktop {
		item.Specs["battery"] = "N/A"
		item.Specs["screen"] = "Monitor Req"
		item.Scores.Battery = 0
		item.Scores.Portability = 1
	}
	return item
}
