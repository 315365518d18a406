package entity

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/core/tween"
)

var (
	ErrNilConfig       = errors.New("entity config is nil")
	ErrDuplicateConfig = errors.New("entity config already registered")
	ErrUnknownConfig   = errors.New("no entity config registered")
	ErrSpawnFailed     = errors.New("entity spawn failed")
)

const DefaultHighlightDuration = 500 * time.Millisecond

// Template is the visual recipe an entity is instantiated from.
type Template struct {
	Name string
	// Color is the base colour; RandomTint shifts it halfway toward a random hue at spawn.
	Color      models.Color
	RandomTint bool
	// Size is the edge length (or diameter) at scale 1.
	Size float64
}

// Range is a closed interval.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Sample(rnd *rand.Rand) float64 {
	return r.Min + rnd.Float64()*(r.Max-r.Min)
}

// Runtime carries what spawning needs beyond the config itself.
type Runtime struct {
	Templates         map[string]Template
	Animator          tween.Animator
	Rand              *rand.Rand
	ScaleRange        Range
	HighlightDuration time.Duration
	NewID             func() string
	Logger            log.Log
}

func (rt *Runtime) newID() string {
	if rt.NewID != nil {
		return rt.NewID()
	}
	return uuid.NewString()
}

// Config is the immutable recipe for one entity kind. Many entities share one Config.
type Config struct {
	kind             models.EntityKind
	template         string
	defaultBehaviour behaviour.Behaviour
}

// NewConfig builds a config. defaultBehaviour is a prototype cloned onto every
// spawned entity; nil means no default behaviour.
func NewConfig(kind models.EntityKind, template string, defaultBehaviour behaviour.Behaviour) *Config {
	return &Config{kind: kind, template: template, defaultBehaviour: defaultBehaviour}
}

func (c *Config) Kind() models.EntityKind { return c.kind }
func (c *Config) Template() string        { return c.template }

// DefaultBehaviour returns the kind of the auto-attached behaviour, if any.
func (c *Config) DefaultBehaviour() (models.BehaviourKind, bool) {
	if c.defaultBehaviour == nil {
		return models.BehaviourUnknown, false
	}
	return c.defaultBehaviour.Kind(), true
}

type spawnOptions struct {
	id string
}

// SpawnOption customises a single spawn.
type SpawnOption func(*spawnOptions)

// WithID makes the spawned entity take id instead of a generated one. The id is
// still assigned exactly once.
func WithID(id string) SpawnOption {
	return func(o *spawnOptions) { o.id = id }
}

// Spawn instantiates a new entity from the template at position under parent.
// It returns nil when the template is unknown.
func (c *Config) Spawn(rt *Runtime, position models.Vector3, parent string, opts ...SpawnOption) *Entity {
	tpl, ok := rt.Templates[c.template]
	if !ok {
		rt.Logger.Error("entity template not found",
			log.Stringer("kind", c.kind),
			log.String("template", c.template),
		)
		return nil
	}

	o := spawnOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = rt.newID()
	}

	color := tpl.Color
	if tpl.RandomTint {
		color = color.Lerp(models.RandomHue(rt.Rand), 0.5)
	}

	e := newEntity(rt, c.kind, tpl, color)
	e.SetID(o.id)
	e.SetConfig(c)
	e.position = position
	e.parent = parent
	e.scale = models.Uniform(rt.ScaleRange.Sample(rt.Rand))

	if c.defaultBehaviour != nil {
		e.behaviours.Add(behaviour.Clone(c.defaultBehaviour))
	}

	return e
}
