package gui

import (
	"github.com/zeusync/sceneedit/internal/core/models"
)

// Widget identifies a toggle on a view.
type Widget string

const WidgetMode Widget = "mode"

// BehaviourWidget names the toggle bound to a behaviour kind.
func BehaviourWidget(kind models.BehaviourKind) Widget {
	return Widget("behaviour." + kind.String())
}

// View is a presentation surface kept in sync with editor state.
type View interface {
	SetModeLabel(text string)
	SetToggle(widget Widget, on bool)
	SetPoints(points int)
	ShowBehaviourMenu(show bool, animate bool)
}

// State is a plain record of everything pushed to a View.
type State struct {
	ModeLabel    string          `json:"mode_label"`
	Toggles      map[Widget]bool `json:"toggles"`
	Points       int             `json:"points"`
	MenuVisible  bool            `json:"menu_visible"`
	MenuAnimated bool            `json:"menu_animated"`
}

var _ View = (*StateView)(nil)

// StateView records view updates into a State.
type StateView struct {
	State State
}

func NewStateView() *StateView {
	return &StateView{State: State{Toggles: make(map[Widget]bool)}}
}

func (v *StateView) SetModeLabel(text string)         { v.State.ModeLabel = text }
func (v *StateView) SetToggle(widget Widget, on bool) { v.State.Toggles[widget] = on }
func (v *StateView) SetPoints(points int)             { v.State.Points = points }

func (v *StateView) ShowBehaviourMenu(show bool, animate bool) {
	v.State.MenuVisible = show
	v.State.MenuAnimated = animate
}

// Snapshot returns a copy safe to hand to another goroutine.
func (v *StateView) Snapshot() State {
	s := v.State
	s.Toggles = make(map[Widget]bool, len(v.State.Toggles))
	for k, on := range v.State.Toggles {
		s.Toggles[k] = on
	}
	return s
}
