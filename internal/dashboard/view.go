package dashboard

import (
	"strings"

	"github.com/MikeSquared-Agency/SpecHunter/internal/compare"
	"github.com/MikeSquared-Agency/SpecHunter/internal/scoring"
	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

// View is everything a client needs to render the dashboard. It is rebuilt
// from scratch on every call.
type View struct {
	Weights         scoring.WeightConfig `json:"weights"`
	Search          string               `json:"search"`
	Results         []scoring.RankedItem `json:"results"`
	Comparison      []store.Item         `json:"comparison"`
	CompareCapacity int                  `json:"compare_capacity"`
	Radar           []compare.RadarRow   `json:"radar"`
	Highlight       *compare.Highlight   `json:"highlight,omitempty"`
	Discovery       DiscoveryStatus      `json:"discovery"`
	// SuggestDiscovery is set when a non-empty search matched nothing.
	SuggestDiscovery bool `json:"suggest_discovery"`
}

func Render(s State, catalog []store.Item, scorer *scoring.Scorer) View {
	results := scorer.Rank(catalog, s.Weights, s.Search)
	if results == nil {
		results = []scoring.RankedItem{}
	}
	selected := s.Compare.Resolve(catalog)
	return View{
		Weights:          s.Weights,
		Search:           s.Search,
		Results:          results,
		Comparison:       selected,
		CompareCapacity:  compare.Capacity,
		Radar:            compare.Radar(selected),
		Highlight:        compare.Highlights(selected),
		Discovery:        s.Discovery,
		SuggestDiscovery: len(results) == 0 && strings.TrimSpace(s.Search) != "",
	}
}
