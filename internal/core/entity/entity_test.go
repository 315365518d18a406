package entity

import (
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/core/tween"
)

type score struct{ total int }

func (s *score) AddPoints(n int) { s.total += n }

type fixture struct {
	tweener   *tween.Tweener
	score     *score
	manager   *Manager
	factory   *Factory
	generator *Generator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := log.NewNop()
	tw := tween.New()
	sc := &score{}
	rnd := rand.New(rand.NewPCG(1, 2))

	next := 0
	rt := &Runtime{
		Templates: map[string]Template{
			"cube":   {Name: "cube", Color: models.Color{R: 0.2, G: 0.4, B: 0.8, A: 1}, Size: 1},
			"sphere": {Name: "sphere", Color: models.Color{R: 0.9, G: 0.1, B: 0.1, A: 1}, Size: 1, RandomTint: true},
		},
		Animator:   tw,
		Rand:       rnd,
		ScaleRange: Range{Min: 0.5, Max: 1.0},
		NewID: func() string {
			next++
			return "e" + strconv.Itoa(next)
		},
		Logger: logger,
	}

	manager := NewManager(logger)
	factory := NewFactory(manager, rt, logger)
	points := behaviour.NewPoints(behaviour.DefaultPointsAmount, sc, nil, logger)
	require.NoError(t, factory.Register(NewConfig(models.EntityCube, "cube", points)))
	require.NoError(t, factory.Register(NewConfig(models.EntitySphere, "sphere", nil)))

	area := models.Box{Center: models.Vec3(0, 1, 0), Size: models.Vec3(10, 2, 10)}
	return &fixture{
		tweener:   tw,
		score:     sc,
		manager:   manager,
		factory:   factory,
		generator: NewGenerator(factory, area, "", rnd, logger),
	}
}

func TestGenerateRegistersEntityInsideArea(t *testing.T) {
	f := newFixture(t)

	e, err := f.generator.Generate(models.EntityCube)
	require.NoError(t, err)

	assert.Equal(t, models.EntityCube, e.Kind())
	assert.Equal(t, "e1", e.ID())
	assert.Equal(t, DefaultRoot, e.Parent())
	assert.True(t, f.generator.Area().Contains(e.Position()))
	assert.True(t, e.Scale().IsUniform(1e-9))
	assert.GreaterOrEqual(t, e.UniformScale(), 0.5)
	assert.LessOrEqual(t, e.UniformScale(), 1.0)
	assert.Equal(t, []*Entity{e}, f.manager.Entities())
}

func TestDefaultBehaviourIsAttachedPerEntity(t *testing.T) {
	f := newFixture(t)

	a, err := f.generator.Generate(models.EntityCube)
	require.NoError(t, err)
	b, err := f.generator.Generate(models.EntityCube)
	require.NoError(t, err)
	s, err := f.generator.Generate(models.EntitySphere)
	require.NoError(t, err)

	assert.Equal(t, []models.BehaviourKind{models.BehaviourPoints}, a.Behaviours().Kinds())
	assert.NotSame(t, a.Behaviours().Behaviours()[0], b.Behaviours().Behaviours()[0])
	assert.Equal(t, 0, s.Behaviours().Len())

	kind, ok := a.Config().DefaultBehaviour()
	assert.True(t, ok)
	assert.Equal(t, models.BehaviourPoints, kind)
}

func TestIDAndConfigAreAssignedOnce(t *testing.T) {
	f := newFixture(t)

	e, err := f.generator.GenerateAt(models.EntityCube, models.Vec3(1, 2, 3), WithID("saved"))
	require.NoError(t, err)
	assert.Equal(t, "saved", e.ID())
	assert.Equal(t, models.Vec3(1, 2, 3), e.Position())

	assert.False(t, e.SetID("other"))
	assert.Equal(t, "saved", e.ID())

	sphere, _ := f.factory.Config(models.EntitySphere)
	assert.False(t, e.SetConfig(sphere))
	assert.Equal(t, models.EntityCube, e.Config().Kind())
}

func TestDestroyUnregistersAndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	e, err := f.generator.Generate(models.EntityCube)
	require.NoError(t, err)

	calls := 0
	e.OnDestroy(func(got *Entity) error {
		calls++
		assert.True(t, f.manager.Len() == 0 || got == e)
		return nil
	})

	e.Destroy()
	e.Destroy()

	assert.Equal(t, 1, calls)
	assert.True(t, e.IsDestroyed())
	assert.Equal(t, 0, f.manager.Len())
	_, found := f.manager.Find(e.ID())
	assert.False(t, found)
}

func TestClearDestroysEverything(t *testing.T) {
	f := newFixture(t)
	var destroyed []string
	for range 3 {
		e, err := f.generator.Generate(models.EntityCube)
		require.NoError(t, err)
		e.OnDestroy(func(e *Entity) error {
			destroyed = append(destroyed, e.ID())
			return nil
		})
	}

	f.manager.Clear()

	assert.Equal(t, []string{"e1", "e2", "e3"}, destroyed)
	assert.Equal(t, 0, f.manager.Len())
}

func TestUnknownKindAndMissingTemplate(t *testing.T) {
	f := newFixture(t)

	_, err := f.generator.Generate(models.EntityUnknown)
	assert.ErrorIs(t, err, ErrUnknownConfig)

	assert.ErrorIs(t, f.factory.Register(NewConfig(models.EntityCube, "cube", nil)), ErrDuplicateConfig)
	assert.ErrorIs(t, f.factory.Register(nil), ErrNilConfig)

	rt := &Runtime{Templates: map[string]Template{}, Logger: log.NewNop()}
	assert.Nil(t, NewConfig(models.EntityCube, "missing", nil).Spawn(rt, models.Zero, ""))
}

func TestHighlightFadesAndIgnoresRepeats(t *testing.T) {
	f := newFixture(t)
	e, err := f.generator.Generate(models.EntityCube)
	require.NoError(t, err)
	original := e.Color()

	done := 0
	e.Highlight(true, func() { done++ })
	e.Highlight(true, func() { done++ })
	assert.True(t, e.Highlighted())

	f.tweener.Tick(DefaultHighlightDuration + time.Millisecond)
	assert.Equal(t, 1, done)
	assert.Equal(t, models.White, e.Color())

	e.Highlight(false, nil)
	f.tweener.Tick(DefaultHighlightDuration + time.Millisecond)
	assert.False(t, e.Highlighted())
	assert.Equal(t, original, e.Color())
}

func TestRandomTintStaysBetweenBaseAndHue(t *testing.T) {
	f := newFixture(t)
	e, err := f.generator.Generate(models.EntitySphere)
	require.NoError(t, err)

	assert.Equal(t, e.Color(), e.OriginalColor())
	assert.NotEqual(t, e.Template().Color, e.Color())
}

func TestExplodeDestroysAndUnregisters(t *testing.T) {
	f := newFixture(t)
	e, err := f.generator.Generate(models.EntityCube)
	require.NoError(t, err)

	e.Behaviours().Add(behaviour.NewExplode(2, time.Second, f.tweener, nil, log.NewNop()))
	e.Behaviours().RunAll()
	assert.Equal(t, behaviour.DefaultPointsAmount, f.score.total)
	assert.Equal(t, 1, f.manager.Len())

	f.tweener.Tick(time.Second)
	assert.True(t, e.IsDestroyed())
	assert.Equal(t, 0, f.manager.Len())
	assert.Equal(t, 0, e.Behaviours().Len())
}
