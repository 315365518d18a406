package behaviour

import (
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

// Manager holds the behaviours attached to one entity, at most one per kind,
// in insertion order.
type Manager struct {
	owner  Target
	items  []Behaviour
	logger log.Log
}

func NewManager(owner Target, logger log.Log) *Manager {
	return &Manager{owner: owner, logger: logger}
}

// Add attaches b unless a behaviour of the same kind is already attached.
// It reports whether b was attached.
func (m *Manager) Add(b Behaviour) bool {
	if b == nil {
		m.logger.Warn("refusing to attach nil behaviour", log.String("entity", m.owner.ID()))
		return false
	}

	if m.Contains(b.Kind()) {
		m.logger.Debug("behaviour of this kind is already added",
			log.String("entity", m.owner.ID()),
			log.Stringer("kind", b.Kind()),
		)
		return false
	}

	m.items = append(m.items, b)
	return true
}

// Remove detaches and releases the behaviour of kind. It reports whether
// anything was removed.
func (m *Manager) Remove(kind models.BehaviourKind) bool {
	i := m.indexOf(kind)
	if i < 0 {
		return false
	}

	b := m.items[i]
	m.items = append(m.items[:i:i], m.items[i+1:]...)
	release(b)
	return true
}

func (m *Manager) Contains(kind models.BehaviourKind) bool {
	return m.indexOf(kind) >= 0
}

// RunAll executes every attached behaviour against the owner.
func (m *Manager) RunAll() {
	items := make([]Behaviour, len(m.items))
	copy(items, m.items)
	for _, b := range items {
		b.Do(m.owner)
	}
}

// Clear detaches and releases every behaviour.
func (m *Manager) Clear() {
	items := m.items
	m.items = nil
	for _, b := range items {
		release(b)
	}
}

func (m *Manager) Len() int { return len(m.items) }

// Kinds lists attached kinds in insertion order.
func (m *Manager) Kinds() []models.BehaviourKind {
	out := make([]models.BehaviourKind, len(m.items))
	for i, b := range m.items {
		out[i] = b.Kind()
	}
	return out
}

func (m *Manager) Behaviours() []Behaviour {
	out := make([]Behaviour, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager) indexOf(kind models.BehaviourKind) int {
	for i, b := range m.items {
		if b.Kind() == kind {
			return i
		}
	}
	return -1
}

func release(b Behaviour) {
	if r, ok := b.(Releaser); ok {
		r.Release()
	}
}
