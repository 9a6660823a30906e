package model

import (
	"sync"

	"github.com/yaptide/chipstack/errors"
	"gopkg.in/mgo.v2/bson"
)

// MemoryStore keeps simulations in process memory. Used when no database
// is configured.
type MemoryStore struct {
	mu          sync.RWMutex
	simulations map[bson.ObjectId]Simulation
}

// NewMemoryStore ...
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{simulations: map[bson.ObjectId]Simulation{}}
}

// Insert ...
func (m *MemoryStore) Insert(s *Simulation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulations[s.ID] = *s
	return nil
}

// Get ...
func (m *MemoryStore) Get(id bson.ObjectId) (*Simulation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.simulations[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return &s, nil
}

// List ...
func (m *MemoryStore) List() ([]Simulation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]Simulation, 0, len(m.simulations))
	for _, s := range m.simulations {
		list = append(list, s.Summary())
	}
	sortNewestFirst(list)
	return list, nil
}

// Remove ...
func (m *MemoryStore) Remove(id bson.ObjectId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.simulations[id]; !ok {
		return errors.ErrNotFound
	}
	delete(m.simulations, id)
	return nil
}
