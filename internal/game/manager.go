package game

import (
	"context"

	"github.com/zeusync/sceneedit/internal/core/entity"
	"github.com/zeusync/sceneedit/internal/core/mode"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/core/state"
	"github.com/zeusync/sceneedit/internal/ui"
)

// Manager drives the top-level game lifecycle.
type Manager struct {
	modes    *mode.Manager
	state    *state.Manager
	entities *entity.Manager
	ui       *ui.Manager
	logger   log.Log
}

func NewManager(modes *mode.Manager, st *state.Manager, entities *entity.Manager, uiManager *ui.Manager, logger log.Log) *Manager {
	return &Manager{
		modes:    modes,
		state:    st,
		entities: entities,
		ui:       uiManager,
		logger:   logger.Named("game"),
	}
}

// Start syncs listeners with the initial selection and mode, restores the
// saved scene and enables saving.
func (m *Manager) Start(ctx context.Context) error {
	m.ui.Selector().Start()
	m.modes.Start()

	n, err := m.state.Load(ctx)
	if err != nil {
		return err
	}

	m.ui.SetReady(true)
	m.logger.Info("game started", log.Int("entities", n), log.Stringer("mode", m.modes.Mode()))
	return nil
}

// Restart returns to the default mode, clears the saved scene and destroys
// every live entity.
func (m *Manager) Restart(ctx context.Context) error {
	m.modes.Restart()
	err := m.state.Clear(ctx)
	m.entities.Clear()

	m.logger.Info("game restarted")
	return err
}
