package hermes

import "time"

// CatalogItemEvent is published when an item joins the catalog, either from
// a discovery lookup or from the admin endpoint.
type CatalogItemEvent struct {
	ItemID    int64              `json:"item_id"`
	Brand     string             `json:"brand"`
	Name      string             `json:"name"`
	Category  string             `json:"category"`
	Price     float64            `json:"price"`
	Source    string             `json:"source"`
	SessionID string             `json:"session_id,omitempty"`
	Query     string             `json:"query,omitempty"`
	Specs     map[string]string  `json:"specs,omitempty"`
	Scores    map[string]float64 `json:"scores,omitempty"`
	Timestamp time.Time          `json:"timestamp"`

	// Origin identifies the publishing process so it can skip its own events.
	Origin string `json:"origin"`
}

type CompareToggledEvent struct {
	SessionID string    `json:"session_id"`
	ItemID    int64     `json:"item_id"`
	Selected  bool      `json:"selected"`
	Selection []int64   `json:"selection"`
	Timestamp time.Time `json:"timestamp"`
}

type DiscoveryFailedEvent struct {
	SessionID string    `json:"session_id"`
	Query     string    `json:"query"`
	Error     string    `json:"error"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}
