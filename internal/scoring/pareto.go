package scoring

import "github.com/MikeSquared-Agency/SpecHunter/internal/store"

// ParetoFrontier returns the ids of items no other item dominates. An item
// dominates another when it scores at least as well on all five dimensions,
// costs no more, and is strictly better on at least one of them.
// O(n^2) dominance check, fine for catalog sizes.
func ParetoFrontier(items []store.Item) map[int64]bool {
	frontier := make(map[int64]bool, len(items))
	for i := range items {
		dominated := false
		for j := range items {
			if i == j {
				continue
			}
			if dominates(&items[j], &items[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier[items[i].ID] = true
		}
	}
	return frontier
}

// dominates returns true if a dominates b. Scores are higher-is-better,
// price is lower-is-better.
func dominates(a, b *store.Item) bool {
	as, bs := scoreVector(a.Scores), scoreVector(b.Scores)
	if a.Price > b.Price {
		return false
	}
	strict := a.Price < b.Price
	for k := range as {
		if as[k] < bs[k] {
			return false
		}
		if as[k] > bs[k] {
			strict = true
		}
	}
	return strict
}

func scoreVector(s store.Scores) [5]float64 {
	return [5]float64{s.Performance, s.Battery, s.Portability, s.Display, s.Features}
}
