package windowstate

import (
	"sync"

	"github.com/1broseidon/tategaki/internal/geometry"
)

// MemoryStore keeps the record in memory only.
type MemoryStore struct {
	mu    sync.Mutex
	def   geometry.Size
	rec   *geometry.Record
	saves int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store that restores def.
func NewMemoryStore(def geometry.Size) *MemoryStore {
	return &MemoryStore{def: def}
}

// Restore returns the saved record or the default size.
func (m *MemoryStore) Restore() geometry.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return geometry.FromSize(m.def)
	}
	return m.rec.Clone()
}

// Save replaces the saved record.
func (m *MemoryStore) Save(rec geometry.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := rec.Clone()
	m.rec = &c
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
