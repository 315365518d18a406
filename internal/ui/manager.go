package ui

import (
	"context"
	"fmt"

	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/mode"
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

// Manager routes selection and behaviour edits according to the current mode
// and persists the scene after each change.
type Manager struct {
	modes      *mode.Manager
	saver      Saver
	behaviours *behaviour.Factory
	selector   *Selector
	mover      *Mover
	ready      bool
	logger     log.Log
}

func NewManager(
	modes *mode.Manager,
	saver Saver,
	behaviours *behaviour.Factory,
	selector *Selector,
	mover *Mover,
	logger log.Log,
) *Manager {
	m := &Manager{
		modes:      modes,
		saver:      saver,
		behaviours: behaviours,
		selector:   selector,
		mover:      mover,
		logger:     logger.Named("ui"),
	}

	selector.OnSelected(func(Selection) error {
		m.onSelected()
		return nil
	})
	modes.OnChange(func(mode.Mode) error {
		if selected := selector.Selected(); selected != nil {
			selected.Highlight(false, nil)
		}
		selector.Select(nil, true)
		return nil
	})

	return m
}

func (m *Manager) Selector() *Selector { return m.selector }

func (m *Manager) onSelected() {
	selected, previous := m.selector.Selected(), m.selector.Previous()

	switch m.modes.Mode() {
	case mode.Editor:
		if previous != nil {
			previous.Highlight(false, nil)
		}
		if selected != nil {
			selected.Highlight(true, nil)
		}

	case mode.Test:
		if selected != nil {
			selected.Behaviours().RunAll()
			m.selector.Select(nil, false)
		}

	default:
		panic(fmt.Sprintf("unknown mode %d", m.modes.Mode()))
	}
}

// SetReady enables saving. Saves requested before the scene was loaded are dropped.
func (m *Manager) SetReady(ready bool) { m.ready = ready }

func (m *Manager) Ready() bool { return m.ready }

// Save persists the scene once the editor is ready.
func (m *Manager) Save(ctx context.Context) error {
	if !m.ready {
		m.logger.Debug("skipping save before scene is loaded")
		return nil
	}
	return m.saver.Save(ctx)
}

// ToggleBehaviour attaches or detaches a behaviour on the selected entity and
// saves the scene.
func (m *Manager) ToggleBehaviour(ctx context.Context, kind models.BehaviourKind, on bool) error {
	if selected := m.selector.Selected(); selected != nil {
		if on {
			if b, err := m.behaviours.Create(kind); err == nil {
				selected.Behaviours().Add(b)
			}
		} else {
			selected.Behaviours().Remove(kind)
		}
	}
	return m.Save(ctx)
}

// Pointer feeds a pointer event to selection and then to dragging.
func (m *Manager) Pointer(ctx context.Context, ev PointerEvent) {
	m.selector.Update(ev)
	if m.mover != nil {
		m.mover.Update(ctx, ev)
	}
}
