package admin

import (
	"sort"
	"sync"
)

// BusySet tracks the ids of entities with a mutation in flight. Marking one
// id busy never blocks work on another.
type BusySet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewBusySet returns an empty set
func NewBusySet() *BusySet {
	return &BusySet{ids: make(map[string]struct{})}
}

// Acquire marks id busy, reporting false when it already was
func (b *BusySet) Acquire(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.ids[id]; busy {
		return false
	}
	b.ids[id] = struct{}{}
	return true
}

// Release clears id
func (b *BusySet) Release(id string) {
	b.mu.Lock()
	delete(b.ids, id)
	b.mu.Unlock()
}

// Busy reports whether id has a mutation in flight
func (b *BusySet) Busy(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, busy := b.ids[id]
	return busy
}

// IDs returns the busy ids in sorted order
func (b *BusySet) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.ids))
	for id := range b.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
