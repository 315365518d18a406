package entity

import (
	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

// Manager is the registry of live entities in creation order.
type Manager struct {
	entities []*Entity
	logger   log.Log
}

func NewManager(logger log.Log) *Manager {
	return &Manager{logger: logger}
}

// Add registers e. Adding nil or an already registered entity does nothing.
func (m *Manager) Add(e *Entity) {
	if e == nil || m.Contains(e) {
		return
	}
	m.entities = append(m.entities, e)
}

// Remove unregisters e and reports whether it was present.
func (m *Manager) Remove(e *Entity) bool {
	for i, cur := range m.entities {
		if cur == e {
			m.entities = append(m.entities[:i:i], m.entities[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Manager) Contains(e *Entity) bool {
	for _, cur := range m.entities {
		if cur == e {
			return true
		}
	}
	return false
}

// Find returns the first live entity with the given id.
func (m *Manager) Find(id string) (*Entity, bool) {
	for _, e := range m.entities {
		if e.ID() == id {
			return e, true
		}
	}
	return nil, false
}

// Entities returns a snapshot of the registry.
func (m *Manager) Entities() []*Entity {
	out := make([]*Entity, len(m.entities))
	copy(out, m.entities)
	return out
}

func (m *Manager) Len() int { return len(m.entities) }

// Clear destroys every registered entity and empties the registry.
func (m *Manager) Clear() {
	entities := m.Entities()
	for _, e := range entities {
		e.Destroy()
	}
	m.entities = nil
	m.logger.Debug("entities cleared", log.Int("count", len(entities)))
}
