package tui

import (
	"github.com/zeusync/sceneedit/internal/ui"
)

// gesture turns raw mouse button state into pointer phases.
type gesture struct {
	pressed  bool
	col, row int
}

// update returns the phase for a mouse report; ok is false when the report
// is a plain hover.
func (g *gesture) update(col, row int, down bool) (ui.Phase, bool) {
	switch {
	case down && !g.pressed:
		g.pressed, g.col, g.row = true, col, row
		return ui.PhaseBegan, true
	case down && (col != g.col || row != g.row):
		g.col, g.row = col, row
		return ui.PhaseMoved, true
	case down:
		return ui.PhaseStationary, true
	case g.pressed:
		g.pressed = false
		return ui.PhaseEnded, true
	default:
		return 0, false
	}
}
