package entity

import (
	"fmt"

	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

// Factory spawns entities from registered configs and keeps the Manager in
// sync with their lifetime.
type Factory struct {
	configs map[models.EntityKind]*Config
	order   []models.EntityKind
	manager *Manager
	runtime *Runtime
	logger  log.Log
}

func NewFactory(manager *Manager, runtime *Runtime, logger log.Log) *Factory {
	return &Factory{
		configs: make(map[models.EntityKind]*Config),
		manager: manager,
		runtime: runtime,
		logger:  logger,
	}
}

// Register adds a config. A second config for the same kind is rejected and
// the first stays registered.
func (f *Factory) Register(c *Config) error {
	if c == nil {
		return ErrNilConfig
	}
	if !c.Kind().Valid() {
		return fmt.Errorf("%w: %s", models.ErrUnknownEntityKind, c.Kind())
	}
	if _, exists := f.configs[c.Kind()]; exists {
		f.logger.Error("entity config already added, skipping", log.Stringer("kind", c.Kind()))
		return fmt.Errorf("%w: %s", ErrDuplicateConfig, c.Kind())
	}

	f.configs[c.Kind()] = c
	f.order = append(f.order, c.Kind())
	return nil
}

func (f *Factory) Config(kind models.EntityKind) (*Config, bool) {
	c, ok := f.configs[kind]
	return c, ok
}

// Kinds lists registered kinds in registration order.
func (f *Factory) Kinds() []models.EntityKind {
	out := make([]models.EntityKind, len(f.order))
	copy(out, f.order)
	return out
}

// Create spawns an entity of kind at the origin and registers it. The entity
// unregisters itself from the Manager when destroyed.
func (f *Factory) Create(kind models.EntityKind, opts ...SpawnOption) (*Entity, error) {
	c, ok := f.configs[kind]
	if !ok {
		f.logger.Error("cannot create entity", log.Stringer("kind", kind))
		return nil, fmt.Errorf("%w: %s", ErrUnknownConfig, kind)
	}

	e := c.Spawn(f.runtime, models.Zero, "", opts...)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrSpawnFailed, kind)
	}

	f.manager.Add(e)
	e.OnDestroy(func(e *Entity) error {
		f.manager.Remove(e)
		return nil
	})

	return e, nil
}
