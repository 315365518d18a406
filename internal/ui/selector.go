package ui

import (
	"github.com/zeusync/sceneedit/internal/core/entity"
	"github.com/zeusync/sceneedit/internal/core/events/bus"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

// Lookup resolves entity ids reported by hits.
type Lookup interface {
	Find(id string) (*entity.Entity, bool)
}

// Selection is the selector state after a change.
type Selection struct {
	Selected *entity.Entity
	Previous *entity.Entity
}

// Selector keeps a single selected entity and the one selected before it.
// Both are observed for destruction, never owned.
type Selector struct {
	raycaster  *Raycaster
	mask       LayerMask
	lookup     Lookup
	selected   *entity.Entity
	previous   *entity.Entity
	watches    map[*entity.Entity]bus.Subscription
	onSelected *bus.Signal[Selection]
	logger     log.Log
}

func NewSelector(raycaster *Raycaster, mask LayerMask, lookup Lookup, logger log.Log) *Selector {
	return &Selector{
		raycaster:  raycaster,
		mask:       mask,
		lookup:     lookup,
		watches:    make(map[*entity.Entity]bus.Subscription),
		onSelected: bus.NewSignal[Selection]("selection.changed"),
		logger:     logger.Named("selector"),
	}
}

func (s *Selector) Selected() *entity.Entity { return s.selected }
func (s *Selector) Previous() *entity.Entity { return s.previous }

// OnSelected registers a listener called after every effective Select.
func (s *Selector) OnSelected(handler func(Selection) error) bus.Subscription {
	return s.onSelected.Subscribe(handler)
}

func (s *Selector) Observe(obs bus.Observer) {
	s.onSelected.AddObserver(obs)
}

// Start broadcasts the initial empty selection.
func (s *Selector) Start() {
	s.Select(nil, true)
}

// Select makes e the selection. Selecting the current selection again does
// nothing unless force is set; every other call broadcasts, nil included.
func (s *Selector) Select(e *entity.Entity, force bool) {
	if !force && s.selected == e {
		return
	}

	if old := s.previous; old != nil && old != s.selected && old != e {
		s.unwatch(old)
	}

	s.previous = s.selected
	s.selected = e

	if e != nil {
		s.unwatch(e)
		s.watch(e)
	}

	if err := s.onSelected.Publish(Selection{Selected: s.selected, Previous: s.previous}); err != nil {
		s.logger.Error("selection listener failed", log.Error(err))
	}
}

// Update applies a pointer event. A tap first clears the selection and then
// selects the tapped entity, unless it was the one just cleared.
func (s *Selector) Update(ev PointerEvent) {
	if ev.Phase != PhaseBegan {
		return
	}
	if s.raycaster.IsOverUI() {
		return
	}

	prev := s.selected
	s.Select(nil, false)

	hit, ok := s.raycaster.Hit(s.mask)
	if !ok || hit.EntityID == "" {
		return
	}

	e, ok := s.lookup.Find(hit.EntityID)
	if !ok {
		s.logger.Debug("hit entity is not registered", log.String("entity", hit.EntityID))
		return
	}
	if e != prev {
		s.Select(e, false)
	}
}

func (s *Selector) watch(e *entity.Entity) {
	s.watches[e] = e.OnDestroy(s.onDestroyEntity)
}

func (s *Selector) unwatch(e *entity.Entity) {
	if sub, ok := s.watches[e]; ok {
		sub.Cancel()
		delete(s.watches, e)
	}
}

func (s *Selector) onDestroyEntity(e *entity.Entity) error {
	if s.selected == e {
		s.unwatch(e)
		s.selected = nil
		s.Select(nil, true)
		return nil
	}

	if s.previous == e {
		s.unwatch(e)
		s.previous = nil
	}
	return nil
}
