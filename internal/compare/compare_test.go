package compare

import (
	"errors"
	"testing"

	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	var s Set
	s, err := s.Toggle(2)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !s.Contains(2) || s.Len() != 1 {
		t.Fatalf("expected set {2}, got %v", s.IDs())
	}

	s, err = s.Toggle(2)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if s.Contains(2) || s.Len() != 0 {
		t.Errorf("expected empty set, got %v", s.IDs())
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	start, _ := NewSet(1, 9)
	for _, id := range []int64{1, 9, 7} {
		once, err := start.Toggle(id)
		if err != nil {
			t.Fatalf("toggle %d failed: %v", id, err)
		}
		twice, err := once.Toggle(id)
		if err != nil {
			t.Fatalf("second toggle %d failed: %v", id, err)
		}
		if twice.Contains(id) != start.Contains(id) {
			t.Errorf("id %d: presence changed after toggling twice", id)
		}
	}
}

func TestToggleCapacity(t *testing.T) {
	s, err := NewSet(1, 2, 3)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}

	next, err := s.Toggle(5)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if next.Len() != Capacity {
		t.Errorf("expected size %d, got %d", Capacity, next.Len())
	}
	want := []int64{1, 2, 3}
	for i, id := range next.IDs() {
		if id != want[i] {
			t.Errorf("selection changed: %v", next.IDs())
			break
		}
	}

	// removing still works when full
	next, err = s.Toggle(2)
	if err != nil {
		t.Fatalf("expected removal from full set to succeed: %v", err)
	}
	if next.Len() != 2 {
		t.Errorf("expected size 2, got %d", next.Len())
	}
}

func TestToggleDoesNotMutateReceiver(t *testing.T) {
	s, _ := NewSet(1, 2)
	_, _ = s.Toggle(3)
	_, _ = s.Toggle(1)
	if s.Len() != 2 || !s.Contains(1) || s.Contains(3) {
		t.Errorf("receiver mutated: %v", s.IDs())
	}
}

func TestSelectionOrderPreserved(t *testing.T) {
	s, _ := NewSet(10, 1, 7)
	s, _ = s.Toggle(1)
	s, _ = s.Toggle(2)
	want := []int64{10, 7, 2}
	got := s.IDs()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestNewSetDeduplicatesAndLimits(t *testing.T) {
	s, err := NewSet(1, 1, 2)
	if err != nil || s.Len() != 2 {
		t.Errorf("expected deduplicated set of 2, got %v (%v)", s.IDs(), err)
	}
	if _, err := NewSet(1, 2, 3, 4); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestClear(t *testing.T) {
	s, _ := NewSet(1, 2, 3)
	s = s.Clear()
	if s.Len() != 0 {
		t.Errorf("expected empty set, got %v", s.IDs())
	}
}

func TestResolveSkipsMissing(t *testing.T) {
	s, _ := NewSet(7, 42, 1)
	items := s.Resolve(store.SeedCatalog())
	if len(items) != 2 {
		t.Fatalf("expected 2 resolved items, got %d", len(items))
	}
	if items[0].ID != 7 || items[1].ID != 1 {
		t.Errorf("expected selection order [7 1], got [%d %d]", items[0].ID, items[1].ID)
	}
}

func TestRadar(t *testing.T) {
	s, _ := NewSet(2, 10)
	rows := Radar(s.Resolve(store.SeedCatalog()))

	if len(rows) != 5 {
		t.Fatalf("expected 5 radar rows, got %d", len(rows))
	}
	expected := []struct {
		metric string
		values []float64
	}{
		{"Performance", []float64{9.8, 9.0}},
		{"Battery", []float64{4.0, 8.5}},
		{"Portability", []float64{3.0, 10.0}},
		{"Display", []float64{8.0, 9.5}},
		{"Features", []float64{9.0, 9.5}},
	}
	for i, e := range expected {
		if rows[i].Metric != e.metric {
			t.Errorf("row %d: expected metric %s, got %s", i, e.metric, rows[i].Metric)
		}
		if rows[i].FullMark != FullMark {
			t.Errorf("row %d: expected full mark %v, got %v", i, FullMark, rows[i].FullMark)
		}
		for j, v := range e.values {
			if rows[i].Values[j] != v {
				t.Errorf("%s[%d]: expected %v, got %v", e.metric, j, v, rows[i].Values[j])
			}
		}
	}
}

func TestRadarEmpty(t *testing.T) {
	rows := Radar(nil)
	for _, r := range rows {
		if len(r.Values) != 0 {
			t.Errorf("expected no values for %s", r.Metric)
		}
	}
}

func TestSetJSON(t *testing.T) {
	s, _ := NewSet(9, 3)
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(data) != "[9,3]" {
		t.Errorf("expected [9,3], got %s", data)
	}

	var back Set
	if err := back.UnmarshalJSON([]byte("[1,2,3,4]")); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded decoding 4 ids, got %v", err)
	}
}

func TestStrongest(t *testing.T) {
	tests := []struct {
		name   string
		scores store.Scores
		metric string
		score  float64
	}{
		{"single best", store.Scores{Performance: 9.8, Battery: 4, Portability: 3, Display: 8, Features: 9}, "Performance", 9.8},
		{"two-way tie takes the later", store.Scores{Performance: 8, Battery: 7.5, Portability: 9.5, Display: 9.5, Features: 8}, "Display", 9.5},
		{"three-way tie", store.Scores{Performance: 10, Battery: 3, Portability: 4, Display: 10, Features: 10}, "Features", 10},
		{"all zero", store.Scores{}, "Features", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metric, score := Strongest(store.Item{Scores: tt.scores})
			if metric != tt.metric || score != tt.score {
				t.Errorf("Strongest = %s %v, want %s %v", metric, score, tt.metric, tt.score)
			}
		})
	}
}

func TestHighlightsNeedTwoItems(t *testing.T) {
	legion := store.Item{ID: 2, Name: "Legion Pro 5", Scores: store.Scores{Performance: 9.8, Battery: 4}}
	tuf := store.Item{ID: 7, Name: "TUF Gaming F15", Scores: store.Scores{Features: 8}}

	if h := Highlights([]store.Item{legion}); h != nil {
		t.Errorf("expected no highlight for one item, got %+v", h)
	}
	h := Highlights([]store.Item{legion, tuf})
	if h == nil {
		t.Fatal("expected a highlight for two items")
	}
	if h.ItemID != 2 || h.Metric != "Performance" || h.Score != 9.8 {
		t.Errorf("unexpected highlight %+v", h)
	}
}
