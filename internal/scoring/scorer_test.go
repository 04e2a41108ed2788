package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

func legion() store.Item {
	return store.Item{
		ID: 2, Brand: "Lenovo", Name: "Legion Pro 5", Price: 45900, Category: "Gaming Laptop",
		Scores: store.Scores{Performance: 9.8, Battery: 4.0, Portability: 3.0, Display: 8.0, Features: 9.0},
	}
}

func TestTechScore(t *testing.T) {
	it := legion()
	// (9.8*50 + 4.0*20 + 3.0*30) / 100 = 660 / 100
	assert.InDelta(t, 6.6, TechScore(it.Scores, DefaultWeights()), 1e-9)
}

func TestTechScoreZeroWeights(t *testing.T) {
	it := legion()
	w := WeightConfig{PriceSensitivity: 50}
	got := TechScore(it.Scores, w)
	assert.Equal(t, 0.0, got)
	assert.False(t, math.IsNaN(got))
}

func TestPriceFactor(t *testing.T) {
	s := NewScorer(0)
	assert.Equal(t, DefaultMaxReferencePrice, s.MaxReferencePrice())
	assert.InDelta(t, 0.42625, s.PriceFactor(45900), 1e-9)
	assert.InDelta(t, 1.0, s.PriceFactor(0), 1e-9)
	assert.InDelta(t, -0.5, s.PriceFactor(120000), 1e-9)
}

func TestExplainLegionDefaultWeights(t *testing.T) {
	s := NewScorer(DefaultMaxReferencePrice)
	it := legion()
	b := s.Explain(&it, DefaultWeights())

	assert.InDelta(t, 6.6, b.TechScore, 1e-9)
	assert.InDelta(t, 0.42625, b.PriceFactor, 1e-9)
	assert.InDelta(t, 0.5, b.PriceWeight, 1e-9)
	assert.InDelta(t, 33.0, b.TechContribution, 1e-9)
	assert.InDelta(t, 21.3125, b.PriceContribution, 1e-9)
	assert.InDelta(t, 54.3125, b.FinalScore, 1e-9)
	assert.False(t, b.Clamped)
	assert.False(t, b.ZeroTechWeights)
}

func TestFinalScoreClampedAbove(t *testing.T) {
	s := NewScorer(DefaultMaxReferencePrice)
	// Out-of-range scores are the only way to push past 100.
	it := store.Item{Price: 0, Scores: store.Scores{Performance: 15, Battery: 15, Portability: 15}}
	b := s.Explain(&it, WeightConfig{Performance: 100, PriceSensitivity: 10})

	assert.Greater(t, b.Unclamped, MaxFinalScore)
	assert.Equal(t, MaxFinalScore, b.FinalScore)
	assert.True(t, b.Clamped)
}

func TestFinalScoreNotClampedBelow(t *testing.T) {
	s := NewScorer(DefaultMaxReferencePrice)
	it := store.Item{Price: 160000}
	_, final := s.Score(&it, WeightConfig{PriceSensitivity: 100})
	assert.InDelta(t, -100.0, final, 1e-9)
}

func TestRankDefaultOrder(t *testing.T) {
	s := NewScorer(DefaultMaxReferencePrice)
	ranked := s.Rank(store.SeedCatalog(), DefaultWeights(), "")

	require.Len(t, ranked, 7)
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Name
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, []string{
		"ZenBook OLED 14",
		"MacBook Air M3",
		"iPhone 15 Pro Max",
		"TUF Gaming F15",
		"Legion Pro 5",
		"ROG Strix G16CH",
		"ProArt Studiobook",
	}, names)
	assert.InDelta(t, 69.3125, ranked[0].FinalScore, 1e-9)
}

func TestRankStableOnTies(t *testing.T) {
	s := NewScorer(DefaultMaxReferencePrice)
	catalog := store.SeedCatalog()
	ranked := s.Rank(catalog, WeightConfig{}, "")

	require.Len(t, ranked, len(catalog))
	for i := range catalog {
		assert.Equal(t, catalog[i].ID, ranked[i].ID, "position %d", i)
		assert.Equal(t, 0.0, ranked[i].FinalScore)
	}
}

func TestRankOrderingProperty(t *testing.T) {
	s := NewScorer(DefaultMaxReferencePrice)
	catalog := store.SeedCatalog()

	for p := 0; p <= 100; p += 25 {
		for b := 0; b <= 100; b += 25 {
			for port := 0; port <= 100; port += 50 {
				for ps := 0; ps <= 100; ps += 20 {
					w := WeightConfig{Performance: p, Battery: b, Portability: port, PriceSensitivity: ps}
					ranked := s.Rank(catalog, w, "")
					for i, r := range ranked {
						if r.FinalScore > MaxFinalScore || math.IsNaN(r.FinalScore) {
							t.Fatalf("weights %+v: %s has final score %f", w, r.Name, r.FinalScore)
						}
						if i > 0 && ranked[i-1].FinalScore < r.FinalScore {
							t.Fatalf("weights %+v: %s (%f) ranked after %s (%f)",
								w, r.Name, r.FinalScore, ranked[i-1].Name, ranked[i-1].FinalScore)
						}
					}
				}
			}
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	s := NewScorer(DefaultMaxReferencePrice)
	catalog := store.SeedCatalog()
	first := catalog[0].ID
	_ = s.Rank(catalog, DefaultWeights(), "asus")
	assert.Equal(t, first, catalog[0].ID)
}

func TestRankDeterministic(t *testing.T) {
	s := NewScorer(DefaultMaxReferencePrice)
	catalog := store.SeedCatalog()
	a := s.Rank(catalog, DefaultWeights(), "16gb")
	b := s.Rank(catalog, DefaultWeights(), "16gb")
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].FinalScore, b[i].FinalScore)
	}
}

func TestRankFilters(t *testing.T) {
	s := NewScorer(DefaultMaxReferencePrice)
	catalog := store.SeedCatalog()

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"tuf", "tuf", []int64{7}},
		{"case insensitive", "TUF", []int64{7}},
		{"multi token any order", "16gb asus", []int64{3, 9}},
		{"spec value", "i7", []int64{2, 9}},
		{"price text", "45900", []int64{2}},
		{"category", "ultrabook", []int64{3, 1}},
		{"extra whitespace", "  apple   m3 ", []int64{1}},
		{"no match", "thinkpad", nil},
		{"whitespace only", "   ", []int64{3, 1, 10, 7, 2, 9, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := s.Rank(catalog, DefaultWeights(), tt.query)
			var got []int64
			for _, r := range ranked {
				got = append(got, r.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankFilterProperty(t *testing.T) {
	s := NewScorer(DefaultMaxReferencePrice)
	for _, q := range []string{"intel", "ssd 1tb", "apple", "gaming 16", "hours"} {
		for _, r := range s.Rank(store.SeedCatalog(), DefaultWeights(), q) {
			text := SearchableText(&r.Item)
			for _, tok := range Tokenize(q) {
				assert.Contains(t, text, tok, "query %q item %s", q, r.Name)
			}
		}
	}
}
