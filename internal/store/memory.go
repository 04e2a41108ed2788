package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps the catalog in process memory. It is the default when no
// database URL is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Item
	index map[int64]int
}

func NewMemoryStore(seed []Item) *MemoryStore {
	s := &MemoryStore{index: make(map[int64]int, len(seed))}
	for _, it := range seed {
		if it.Source == "" {
			it.Source = SourceCatalog
		}
		s.index[it.ID] = len(s.items)
		s.items = append(s.items, cloneItem(it))
	}
	return s
}

func (s *MemoryStore) ListItems(_ context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	for i, it := range s.items {
		out[i] = cloneItem(it)
	}
	return out, nil
}

func (s *MemoryStore) GetItem(_ context.Context, id int64) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("get item %d: %w", id, ErrItemNotFound)
	}
	it := cloneItem(s.items[idx])
	return &it, nil
}

// AppendItem adds item to the end of the catalog. An id already in use is
// replaced by the next free id above the current maximum.
func (s *MemoryStore) AppendItem(_ context.Context, item *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.index[item.ID]; taken || item.ID <= 0 {
		item.ID = s.nextIDLocked(item.ID)
	}
	s.index[item.ID] = len(s.items)
	s.items = append(s.items, cloneItem(*item))
	return nil
}

func (s *MemoryStore) nextIDLocked(want int64) int64 {
	next := want
	for _, it := range s.items {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	if next <= 0 {
		next = 1
	}
	return next
}

func (s *MemoryStore) Close() error { return nil }

func cloneItem(it Item) Item {
	if it.Specs != nil {
		specs := make(map[string]string, len(it.Specs))
		for k, v := range it.Specs {
			specs[k] = v
		}
		it.Specs = specs
	}
	return it
}
