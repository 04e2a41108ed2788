package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

func TestParetoFrontier(t *testing.T) {
	items := []store.Item{
		{ID: 1, Price: 30000, Scores: store.Scores{Performance: 8, Battery: 8, Portability: 8, Display: 8, Features: 8}},
		// same scores, more expensive
		{ID: 2, Price: 35000, Scores: store.Scores{Performance: 8, Battery: 8, Portability: 8, Display: 8, Features: 8}},
		// worse everywhere at the same price
		{ID: 3, Price: 30000, Scores: store.Scores{Performance: 7, Battery: 8, Portability: 8, Display: 8, Features: 8}},
		// pricier but faster
		{ID: 4, Price: 50000, Scores: store.Scores{Performance: 10, Battery: 5, Portability: 5, Display: 8, Features: 8}},
	}

	frontier := ParetoFrontier(items)
	assert.Equal(t, map[int64]bool{1: true, 4: true}, frontier)
}

func TestParetoFrontierIdenticalItems(t *testing.T) {
	sc := store.Scores{Performance: 5, Battery: 5, Portability: 5, Display: 5, Features: 5}
	items := []store.Item{{ID: 1, Price: 100, Scores: sc}, {ID: 2, Price: 100, Scores: sc}}
	// neither is strictly better
	assert.Len(t, ParetoFrontier(items), 2)
}

func TestParetoFrontierSingleItem(t *testing.T) {
	assert.Equal(t, map[int64]bool{7: true}, ParetoFrontier([]store.Item{{ID: 7}}))
	assert.Empty(t, ParetoFrontier(nil))
}

func TestRankMarksFrontierAcrossWholeCatalog(t *testing.T) {
	catalog := store.SeedCatalog()
	catalog = append(catalog, store.Item{
		ID: 11, Brand: "Generic", Name: "Budget Gaming 15", Price: 46000, Category: "Gaming Laptop",
		Scores: store.Scores{Performance: 9.0, Battery: 4.0, Portability: 3.0, Display: 7.0, Features: 8.0},
	})

	ranked := NewScorer(DefaultMaxReferencePrice).Rank(catalog, DefaultWeights(), "gaming")
	got := map[int64]bool{}
	for _, r := range ranked {
		got[r.ID] = r.ParetoOptimal
	}
	// Legion Pro 5 is cheaper and at least as good on every score
	assert.Equal(t, map[int64]bool{2: true, 7: true, 9: true, 11: false}, got)
}
