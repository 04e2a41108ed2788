package compare

import "github.com/MikeSquared-Agency/SpecHunter/internal/store"

// FullMark is the top of every radar axis.
const FullMark = 10.0

// RadarRow is one axis of the comparison chart. Values holds one score per
// compared item, in selection order.
type RadarRow struct {
	Metric   string    `json:"metric"`
	FullMark float64   `json:"full_mark"`
	Values   []float64 `json:"values"`
}

type metric struct {
	name  string
	score func(store.Scores) float64
}

var metrics = []metric{
	{"Performance", func(s store.Scores) float64 { return s.Performance }},
	{"Battery", func(s store.Scores) float64 { return s.Battery }},
	{"Portability", func(s store.Scores) float64 { return s.Portability }},
	{"Display", func(s store.Scores) float64 { return s.Display }},
	{"Features", func(s store.Scores) float64 { return s.Features }},
}

// Radar builds the five-axis series for the given items.
func Radar(items []store.Item) []RadarRow {
	rows := make([]RadarRow, len(metrics))
	for i, m := range metrics {
		values := make([]float64, len(items))
		for j := range items {
			values[j] = m.score(items[j].Scores)
		}
		rows[i] = RadarRow{Metric: m.name, FullMark: FullMark, Values: values}
	}
	return rows
}

// Highlight names the strongest metric of the first compared item.
type Highlight struct {
	ItemID int64   `json:"item_id"`
	Name   string  `json:"name"`
	Metric string  `json:"metric"`
	Score  float64 `json:"score"`
}

// Strongest returns item's highest score and the metric it belongs to. On a
// tie the later metric in radar order wins.
func Strongest(item store.Item) (string, float64) {
	best := metrics[0]
	top := best.score(item.Scores)
	for _, m := range metrics[1:] {
		if v := m.score(item.Scores); v >= top {
			best, top = m, v
		}
	}
	return best.name, top
}

// Highlights is set once at least two items are compared.
func Highlights(items []store.Item) *Highlight {
	if len(items) < 2 {
		return nil
	}
	metric, score := Strongest(items[0])
	return &Highlight{ItemID: items[0].ID, Name: items[0].Name, Metric: metric, Score: score}
}
