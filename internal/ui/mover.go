package ui

import (
	"context"
	"time"

	"github.com/zeusync/sceneedit/internal/core/mode"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/core/tween"
)

const DefaultMoveDuration = 200 * time.Millisecond

// Saver persists the scene.
type Saver interface {
	Save(ctx context.Context) error
}

// Mover drags the selected entity across the ground in Editor mode. The scene
// is saved once the drag is over and the last move has landed.
type Mover struct {
	modes     *mode.Manager
	selector  *Selector
	raycaster *Raycaster
	mask      LayerMask
	animator  tween.Animator
	duration  time.Duration
	saver     Saver
	logger    log.Log

	dragging   bool
	dirty      bool
	generation uint64
	moving     tween.Target
}

func NewMover(
	modes *mode.Manager,
	selector *Selector,
	raycaster *Raycaster,
	mask LayerMask,
	animator tween.Animator,
	duration time.Duration,
	saver Saver,
	logger log.Log,
) *Mover {
	if duration <= 0 {
		duration = DefaultMoveDuration
	}
	return &Mover{
		modes:     modes,
		selector:  selector,
		raycaster: raycaster,
		mask:      mask,
		animator:  animator,
		duration:  duration,
		saver:     saver,
		logger:    logger.Named("mover"),
	}
}

func (m *Mover) Update(ctx context.Context, ev PointerEvent) {
	switch ev.Phase {
	case PhaseBegan:
		m.dragging = true
	case PhaseMoved, PhaseStationary:
		m.dragging = true
		m.drag(ctx)
	case PhaseEnded:
		m.dragging = false
		if m.moving == nil || !m.animator.Active(m.moving, tween.KindMove) {
			m.moving = nil
			m.flush(ctx)
		}
	}
}

func (m *Mover) drag(ctx context.Context) {
	if m.modes.Mode() != mode.Editor {
		return
	}

	selected := m.selector.Selected()
	if selected == nil {
		return
	}
	if m.raycaster.IsOverUI() {
		return
	}

	hit, ok := m.raycaster.Hit(m.mask)
	if !ok {
		return
	}

	offset := selected.Extent()
	target := hit.Point.Sub(m.raycaster.Ray().Direction.Scale(offset))

	m.generation++
	generation := m.generation
	m.dirty = true
	m.moving = selected

	m.animator.MoveTo(selected, target, m.duration, func() {
		if generation != m.generation {
			return
		}
		m.moving = nil
		if !m.dragging {
			m.flush(ctx)
		}
	})
}

func (m *Mover) flush(ctx context.Context) {
	if !m.dirty {
		return
	}
	m.dirty = false

	if err := m.saver.Save(ctx); err != nil {
		m.logger.Error("cannot save after move", log.Error(err))
	}
}
