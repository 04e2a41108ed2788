package scoring

import (
	"math"
	"sort"

	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

// DefaultMaxReferencePrice is the price ceiling at which the price factor
// reaches zero.
const DefaultMaxReferencePrice = 80000.0

// MaxFinalScore caps finalScore from above. There is no lower bound.
const MaxFinalScore = 100.0

// RankedItem is a catalog item with the scores derived for one evaluation.
type RankedItem struct {
	store.Item
	Rank       int     `json:"rank"`
	TechScore  float64 `json:"tech_score"`
	FinalScore float64 `json:"final_score"`

	// ParetoOptimal is set when no cheaper-or-equal item in the whole catalog
	// matches or beats this one on every score.
	ParetoOptimal bool `json:"pareto_optimal"`
}

// Breakdown captures how a single item's final score was assembled.
type Breakdown struct {
	ItemID            int64   `json:"item_id"`
	TechScore         float64 `json:"tech_score"`
	PriceFactor       float64 `json:"price_factor"`
	PriceWeight       float64 `json:"price_weight"`
	TechContribution  float64 `json:"tech_contribution"`
	PriceContribution float64 `json:"price_contribution"`
	Unclamped         float64 `json:"unclamped"`
	FinalScore        float64 `json:"final_score"`
	Clamped           bool    `json:"clamped"`
	ZeroTechWeights   bool    `json:"zero_tech_weights"`
}

// Scorer ranks catalog items against a weight configuration. It holds no
// state besides the reference price and is safe for concurrent use.
type Scorer struct {
	maxReferencePrice float64
}

// NewScorer creates a Scorer. A non-positive reference price falls back to
// DefaultMaxReferencePrice.
func NewScorer(maxReferencePrice float64) *Scorer {
	if maxReferencePrice <= 0 {
		maxReferencePrice = DefaultMaxReferencePrice
	}
	return &Scorer{maxReferencePrice: maxReferencePrice}
}

func (s *Scorer) MaxReferencePrice() float64 { return s.maxReferencePrice }

// TechScore blends performance, battery and portability by their weights.
// When all three weights are zero it returns 0.
func TechScore(sc store.Scores, w WeightConfig) float64 {
	total := w.TechSum()
	if total == 0 {
		return 0
	}
	sum := sc.Performance*float64(w.Performance) +
		sc.Battery*float64(w.Battery) +
		sc.Portability*float64(w.Portability)
	return sum / float64(total)
}

// PriceFactor is 1 at price 0 and 0 at the reference price. It goes negative
// above the reference price.
func (s *Scorer) PriceFactor(price float64) float64 {
	return 1 - price/s.maxReferencePrice
}

// Explain computes the full score breakdown for one item.
func (s *Scorer) Explain(item *store.Item, w WeightConfig) Breakdown {
	tech := TechScore(item.Scores, w)
	priceFactor := s.PriceFactor(item.Price)
	priceWeight := float64(w.PriceSensitivity) / 100

	techPart := tech * 10 * (1 - priceWeight)
	pricePart := priceFactor * 100 * priceWeight
	raw := techPart + pricePart

	return Breakdown{
		ItemID:            item.ID,
		TechScore:         tech,
		PriceFactor:       priceFactor,
		PriceWeight:       priceWeight,
		TechContribution:  techPart,
		PriceContribution: pricePart,
		Unclamped:         raw,
		FinalScore:        math.Min(MaxFinalScore, raw),
		Clamped:           raw > MaxFinalScore,
		ZeroTechWeights:   w.TechSum() == 0,
	}
}

// Score returns techScore and finalScore for one item.
func (s *Scorer) Score(item *store.Item, w WeightConfig) (techScore, finalScore float64) {
	b := s.Explain(item, w)
	return b.TechScore, b.FinalScore
}

// Rank scores every item, orders them by final score (highest first, ties in
// catalog order) and keeps only the items matching every token of query.
// The input slice is not modified.
func (s *Scorer) Rank(items []store.Item, w WeightConfig, query string) []RankedItem {
	frontier := ParetoFrontier(items)
	ranked := make([]RankedItem, len(items))
	for i := range items {
		tech, final := s.Score(&items[i], w)
		ranked[i] = RankedItem{Item: items[i], TechScore: tech, FinalScore: final, ParetoOptimal: frontier[items[i].ID]}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	tokens := Tokenize(query)
	out := ranked
	if len(tokens) > 0 {
		out = make([]RankedItem, 0, len(ranked))
		for _, r := range ranked {
			if MatchesTokens(&r.Item, tokens) {
				out = append(out, r)
			}
		}
	}

	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
