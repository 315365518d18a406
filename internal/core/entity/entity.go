package entity

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/events/bus"
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/core/tween"
)

var (
	_ behaviour.Target = (*Entity)(nil)
	_ tween.Colorable  = (*Entity)(nil)
	_ tween.Movable    = (*Entity)(nil)
)

var handles atomic.Uint64

// assignOnce holds a value that goes from unset to set exactly once.
type assignOnce[T any] struct {
	value T
	set   bool
}

func (a *assignOnce[T]) assign(v T) bool {
	if a.set {
		return false
	}
	a.value = v
	a.set = true
	return true
}

// Entity is a live object in the scene.
type Entity struct {
	handle   uint64
	id       assignOnce[string]
	config   assignOnce[*Config]
	kind     models.EntityKind
	template Template
	parent   string

	position      models.Vector3
	scale         models.Vector3
	color         models.Color
	originalColor models.Color
	highlighted   bool

	behaviours *behaviour.Manager
	onDestroy  *bus.Signal[*Entity]
	destroyed  bool

	animator          tween.Animator
	highlightDuration time.Duration
	logger            log.Log
}

func newEntity(rt *Runtime, kind models.EntityKind, tpl Template, color models.Color) *Entity {
	e := &Entity{
		handle:            handles.Add(1),
		kind:              kind,
		template:          tpl,
		scale:             models.Uniform(1),
		color:             color,
		originalColor:     color,
		animator:          rt.Animator,
		highlightDuration: rt.HighlightDuration,
		logger:            rt.Logger,
		onDestroy:         bus.NewSignal[*Entity]("entity.destroyed"),
	}
	if e.highlightDuration <= 0 {
		e.highlightDuration = DefaultHighlightDuration
	}
	e.behaviours = behaviour.NewManager(e, rt.Logger)
	return e
}

func (e *Entity) ID() string { return e.id.value }

// SetID assigns the id. Only the first assignment takes effect.
func (e *Entity) SetID(id string) bool {
	if !e.id.assign(id) {
		e.logger.Debug("entity id already initialized",
			log.String("entity", e.id.value),
			log.String("rejected", id),
		)
		return false
	}
	return true
}

func (e *Entity) Config() *Config { return e.config.value }

// SetConfig assigns the config. Only the first assignment takes effect.
func (e *Entity) SetConfig(c *Config) bool {
	if !e.config.assign(c) {
		e.logger.Debug("entity configuration already initialized", log.String("entity", e.ID()))
		return false
	}
	return true
}

// Kind is fixed at spawn time from the config that created the entity.
func (e *Entity) Kind() models.EntityKind { return e.kind }
func (e *Entity) Template() Template      { return e.template }
func (e *Entity) Parent() string          { return e.parent }
func (e *Entity) SetParent(parent string) { e.parent = parent }

func (e *Entity) TweenID() string { return "entity#" + strconv.FormatUint(e.handle, 10) }

func (e *Entity) Position() models.Vector3     { return e.position }
func (e *Entity) SetPosition(p models.Vector3) { e.position = p }
func (e *Entity) Scale() models.Vector3        { return e.scale }
func (e *Entity) SetScale(s models.Vector3)    { e.scale = s }
func (e *Entity) Color() models.Color          { return e.color }
func (e *Entity) SetColor(c models.Color)      { e.color = c }

// UniformScale reads the scale from the X axis; entity scale is always uniform.
func (e *Entity) UniformScale() float64 { return e.scale.X }

func (e *Entity) SetUniformScale(s float64) { e.scale = models.Uniform(s) }

// Extent is the largest world-space dimension of the entity.
func (e *Entity) Extent() float64 {
	return e.template.Size * e.scale.MaxComponent()
}

func (e *Entity) OriginalColor() models.Color { return e.originalColor }

func (e *Entity) Behaviours() *behaviour.Manager { return e.behaviours }

// OnDestroy registers a listener invoked when the entity is destroyed.
func (e *Entity) OnDestroy(handler func(*Entity) error) bus.Subscription {
	return e.onDestroy.Subscribe(handler)
}

func (e *Entity) Highlighted() bool { return e.highlighted }

// Highlight fades the entity to white (on) or back to its original colour.
// Repeating the current state is a no-op and callback is not invoked.
func (e *Entity) Highlight(on bool, callback func()) {
	if e.highlighted == on {
		return
	}

	target := e.originalColor
	if on {
		target = models.White
	}
	e.animator.ColorTo(e, target, e.highlightDuration, callback)
	e.highlighted = on
}

func (e *Entity) IsDestroyed() bool { return e.destroyed }

// Destroy notifies destroy listeners and then tears the entity down. Calling it
// again is a no-op.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true

	if err := e.onDestroy.Publish(e); err != nil {
		e.logger.Error("entity destroy listener failed", log.String("entity", e.ID()), log.Error(err))
	}

	e.animator.Cancel(e)
	e.behaviours.Clear()
	e.onDestroy.Clear()
}
