package mode

import (
	"fmt"

	"github.com/zeusync/sceneedit/internal/core/events/bus"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

// Mode is the interaction mode of the editor.
type Mode uint8

const (
	Editor Mode = iota
	Test
)

// Default is the mode the editor starts in and returns to on restart.
const Default = Editor

func (m Mode) String() string {
	switch m {
	case Editor:
		return "Editor"
	case Test:
		return "Test"
	default:
		panic(fmt.Sprintf("unknown mode %d", uint8(m)))
	}
}

// Manager owns the current mode and announces every assignment.
type Manager struct {
	mode     Mode
	onChange *bus.Signal[Mode]
	logger   log.Log
}

func NewManager(logger log.Log) *Manager {
	return &Manager{
		mode:     Default,
		onChange: bus.NewSignal[Mode]("mode.changed"),
		logger:   logger.Named("mode"),
	}
}

func (m *Manager) Mode() Mode { return m.mode }

// SetMode assigns mode and broadcasts it, even when it did not change.
func (m *Manager) SetMode(mode Mode) {
	m.logger.Debug("mode set", log.Stringer("mode", mode))
	m.mode = mode

	if err := m.onChange.Publish(mode); err != nil {
		m.logger.Error("mode listener failed", log.Error(err))
	}
}

// Start broadcasts the current mode so listeners can sync their initial state.
func (m *Manager) Start() {
	m.SetMode(m.mode)
}

// Restart returns to the default mode.
func (m *Manager) Restart() {
	m.SetMode(Default)
}

// Observe attaches obs to the mode change signal.
func (m *Manager) Observe(obs bus.Observer) {
	m.onChange.AddObserver(obs)
}

// OnChange registers a listener for mode assignments.
func (m *Manager) OnChange(handler func(Mode) error) bus.Subscription {
	return m.onChange.Subscribe(handler)
}
