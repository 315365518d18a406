package entity

import (
	"math/rand/v2"

	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

// DefaultRoot names the scene container new entities are parented to.
const DefaultRoot = "entities"

// Generator places newly created entities inside the spawn area.
type Generator struct {
	factory *Factory
	area    models.Box
	root    string
	rand    *rand.Rand
	logger  log.Log
}

func NewGenerator(factory *Factory, area models.Box, root string, rnd *rand.Rand, logger log.Log) *Generator {
	if root == "" {
		root = DefaultRoot
	}
	return &Generator{
		factory: factory,
		area:    area,
		root:    root,
		rand:    rnd,
		logger:  logger,
	}
}

func (g *Generator) Area() models.Box { return g.area }

// Generate creates an entity of kind at a uniformly random point in the area.
func (g *Generator) Generate(kind models.EntityKind) (*Entity, error) {
	return g.GenerateAt(kind, g.area.RandomPoint(g.rand))
}

// GenerateAt creates an entity of kind at position.
func (g *Generator) GenerateAt(kind models.EntityKind, position models.Vector3, opts ...SpawnOption) (*Entity, error) {
	e, err := g.factory.Create(kind, opts...)
	if err != nil {
		return nil, err
	}

	e.SetPosition(position)
	e.SetParent(g.root)

	g.logger.Debug("entity generated",
		log.String("entity", e.ID()),
		log.Stringer("kind", kind),
		log.Float64("x", position.X),
		log.Float64("y", position.Y),
		log.Float64("z", position.Z),
	)
	return e, nil
}
