package gui

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeusync/sceneedit/internal/core/entity"
	"github.com/zeusync/sceneedit/internal/core/mode"
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/ui"
)

var (
	ErrEditorOnly    = errors.New("intent is only available in editor mode")
	ErrUnknownEntity = errors.New("entity not found")
)

// Restarter resets the whole game.
type Restarter interface {
	Restart(ctx context.Context) error
}

// Manager turns user intents into calls on the editor subsystems and keeps
// every attached View in sync. Views are only ever written to; nothing a view
// shows feeds back into an intent.
type Manager struct {
	modes      *mode.Manager
	game       Restarter
	generator  *entity.Generator
	entities   *entity.Manager
	ui         *ui.Manager
	selector   *ui.Selector
	score      *Score
	behaviours []models.BehaviourKind
	views      []View
	refreshed  bool
	logger     log.Log
}

func NewManager(
	modes *mode.Manager,
	game Restarter,
	generator *entity.Generator,
	entities *entity.Manager,
	uiManager *ui.Manager,
	score *Score,
	behaviours []models.BehaviourKind,
	logger log.Log,
) *Manager {
	m := &Manager{
		modes:      modes,
		game:       game,
		generator:  generator,
		entities:   entities,
		ui:         uiManager,
		selector:   uiManager.Selector(),
		score:      score,
		behaviours: behaviours,
		logger:     logger.Named("gui"),
	}

	m.selector.OnSelected(func(ui.Selection) error {
		m.refreshBehaviours()
		return nil
	})
	modes.OnChange(func(md mode.Mode) error {
		m.refreshBehaviours()
		m.refreshMode(md)
		return nil
	})
	score.OnChange(func(points int) error {
		for _, v := range m.views {
			v.SetPoints(points)
		}
		return nil
	})

	return m
}

// AddView attaches v and brings it up to date without animation.
func (m *Manager) AddView(v View) {
	m.views = append(m.views, v)

	selected := m.selector.Selected()
	v.ShowBehaviourMenu(m.menuVisible(selected), false)
	for _, kind := range m.behaviours {
		v.SetToggle(BehaviourWidget(kind), hasBehaviour(selected, kind))
	}
	v.SetModeLabel(m.modes.Mode().String())
	v.SetToggle(WidgetMode, m.modes.Mode() == mode.Test)
	v.SetPoints(m.score.Points())
}

// Generate spawns an entity of kind at a random spot and saves the scene.
func (m *Manager) Generate(ctx context.Context, kind models.EntityKind) (*entity.Entity, error) {
	if m.modes.Mode() != mode.Editor {
		return nil, ErrEditorOnly
	}

	e, err := m.generator.Generate(kind)
	if err != nil {
		return nil, err
	}
	return e, m.ui.Save(ctx)
}

// Restart resets the game and the score.
func (m *Manager) Restart(ctx context.Context) error {
	err := m.game.Restart(ctx)
	m.score.Reset()
	return err
}

func (m *Manager) SetTestMode(ctx context.Context, on bool) error {
	md := mode.Editor
	if on {
		md = mode.Test
	}
	m.modes.SetMode(md)
	return m.ui.Save(ctx)
}

func (m *Manager) ToggleBehaviour(ctx context.Context, kind models.BehaviourKind, on bool) error {
	if m.modes.Mode() != mode.Editor {
		return ErrEditorOnly
	}
	if err := m.ui.ToggleBehaviour(ctx, kind, on); err != nil {
		return err
	}
	m.refreshToggles(m.selector.Selected())
	return nil
}

// Select selects the entity with id, or clears the selection when id is empty.
func (m *Manager) Select(id string) error {
	if id == "" {
		m.selector.Select(nil, false)
		return nil
	}

	e, ok := m.entities.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	m.selector.Select(e, false)
	return nil
}

// Save persists the scene on demand.
func (m *Manager) Save(ctx context.Context) error {
	return m.ui.Save(ctx)
}

func (m *Manager) menuVisible(selected *entity.Entity) bool {
	return m.modes.Mode() == mode.Editor && selected != nil
}

func (m *Manager) refreshBehaviours() {
	selected := m.selector.Selected()
	show := m.menuVisible(selected)
	animate := m.refreshed
	m.refreshed = true

	for _, v := range m.views {
		v.ShowBehaviourMenu(show, animate)
	}
	m.refreshToggles(selected)
}

func (m *Manager) refreshToggles(selected *entity.Entity) {
	for _, v := range m.views {
		for _, kind := range m.behaviours {
			v.SetToggle(BehaviourWidget(kind), hasBehaviour(selected, kind))
		}
	}
}

func (m *Manager) refreshMode(md mode.Mode) {
	switch md {
	case mode.Editor:
		for _, v := range m.views {
			v.SetModeLabel(md.String())
			v.SetToggle(WidgetMode, false)
		}
	case mode.Test:
		for _, v := range m.views {
			v.SetModeLabel(md.String())
			v.SetToggle(WidgetMode, true)
			v.ShowBehaviourMenu(false, true)
		}
	default:
		panic(fmt.Sprintf("unknown mode %d", md))
	}
}

func hasBehaviour(e *entity.Entity, kind models.BehaviourKind) bool {
	return e != nil && e.Behaviours().Contains(kind)
}
