// Package compare manages the side-by-side selection of catalog items.
package compare

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

// Capacity is the maximum number of items that can be compared at once.
const Capacity = 3

var ErrCapacityExceeded = errors.New("capacity exceeded")

// Set is an ordered selection of item ids without duplicates. The zero value
// is an empty set. Set values are immutable: Toggle and Clear return a new Set.
type Set struct {
	ids []int64
}

func NewSet(ids ...int64) (Set, error) {
	var s Set
	for _, id := range ids {
		if s.Contains(id) {
			continue
		}
		next, err := s.Toggle(id)
		if err != nil {
			return Set{}, err
		}
		s = next
	}
	return s, nil
}

// IDs returns a copy of the selected ids in selection order.
func (s Set) IDs() []int64 {
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s Set) Len() int { return len(s.ids) }

func (s Set) Contains(id int64) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle removes id if it is selected and appends it otherwise. Adding to a
// full set returns ErrCapacityExceeded and the receiver unchanged.
func (s Set) Toggle(id int64) (Set, error) {
	if s.Contains(id) {
		next := make([]int64, 0, len(s.ids)-1)
		for _, v := range s.ids {
			if v != id {
				next = append(next, v)
			}
		}
		return Set{ids: next}, nil
	}
	if len(s.ids) >= Capacity {
		return s, fmt.Errorf("add item %d: %w (max %d)", id, ErrCapacityExceeded, Capacity)
	}
	next := make([]int64, len(s.ids), len(s.ids)+1)
	copy(next, s.ids)
	return Set{ids: append(next, id)}, nil
}

// Clear returns an empty set.
func (s Set) Clear() Set {
	return Set{}
}

// Resolve looks the selected ids up in catalog, preserving selection order.
// Ids missing from catalog are skipped.
func (s Set) Resolve(catalog []store.Item) []store.Item {
	byID := make(map[int64]int, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = i
	}
	out := make([]store.Item, 0, len(s.ids))
	for _, id := range s.ids {
		if idx, ok := byID[id]; ok {
			out = append(out, catalog[idx])
		}
	}
	return out
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON decodes a JSON array of ids, enforcing the same invariants as
// Toggle.
func (s *Set) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	next, err := NewSet(ids...)
	if err != nil {
		return err
	}
	*s = next
	return nil
}
