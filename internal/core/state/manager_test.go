package state

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/entity"
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/core/storage"
	"github.com/zeusync/sceneedit/internal/core/tween"
)

type score struct{ total int }

func (s *score) AddPoints(n int) { s.total += n }

type scene struct {
	store     storage.KeyValue
	entities  *entity.Manager
	generator *entity.Generator
	state     *Manager
}

func newScene(t *testing.T) *scene {
	t.Helper()
	return newSceneWithStore(t, storage.NewMemoryStore(4))
}

func newSceneWithStore(t *testing.T, store storage.KeyValue) *scene {
	t.Helper()
	logger := log.NewNop()
	tw := tween.New()
	rnd := rand.New(rand.NewPCG(7, 11))

	behaviours := behaviour.NewFactory(logger)
	require.NoError(t, behaviours.Register(behaviour.NewExplode(2, behaviour.DefaultExplodeDuration, tw, nil, logger)))
	require.NoError(t, behaviours.Register(behaviour.NewPoints(100, &score{}, nil, logger)))
	points, _ := behaviours.Prototype(models.BehaviourPoints)

	rt := &entity.Runtime{
		Templates: map[string]entity.Template{
			"cube":   {Name: "cube", Color: models.White, Size: 1},
			"sphere": {Name: "sphere", Color: models.White, Size: 1},
		},
		Animator:   tw,
		Rand:       rnd,
		ScaleRange: entity.Range{Min: 0.5, Max: 1},
		Logger:     logger,
	}

	entities := entity.NewManager(logger)
	factory := entity.NewFactory(entities, rt, logger)
	require.NoError(t, factory.Register(entity.NewConfig(models.EntityCube, "cube", points)))
	require.NoError(t, factory.Register(entity.NewConfig(models.EntitySphere, "sphere", nil)))

	area := models.Box{Center: models.Zero, Size: models.Uniform(10)}
	generator := entity.NewGenerator(factory, area, "", rnd, logger)

	return &scene{
		store:     store,
		entities:  entities,
		generator: generator,
		state:     NewManager(store, entities, generator, behaviours, logger),
	}
}

type summary struct {
	ID         string
	Kind       models.EntityKind
	Position   models.Vector3
	Scale      float64
	Behaviours []models.BehaviourKind
}

func (s *scene) summarize() []summary {
	var out []summary
	for _, e := range s.entities.Entities() {
		out = append(out, summary{
			ID:         e.ID(),
			Kind:       e.Kind(),
			Position:   e.Position(),
			Scale:      e.UniformScale(),
			Behaviours: e.Behaviours().Kinds(),
		})
	}
	return out
}

func TestCubeRoundTrip(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()

	cube, err := s.generator.GenerateAt(models.EntityCube, models.Vec3(1, 2, 3))
	require.NoError(t, err)
	cube.SetUniformScale(0.8)
	require.Equal(t, []models.BehaviourKind{models.BehaviourPoints}, cube.Behaviours().Kinds())

	require.NoError(t, s.state.Save(ctx))
	s.entities.Clear()
	require.Equal(t, 0, s.entities.Len())

	n, err := s.state.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got := s.summarize()
	require.Len(t, got, 1)
	assert.Equal(t, cube.ID(), got[0].ID)
	assert.Equal(t, models.EntityCube, got[0].Kind)
	assert.True(t, got[0].Position.ApproxEqual(models.Vec3(1, 2, 3), 1e-9))
	assert.InDelta(t, 0.8, got[0].Scale, 1e-9)
	assert.Equal(t, []models.BehaviourKind{models.BehaviourPoints}, got[0].Behaviours)
}

func TestRoundTripPreservesWholeScene(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()

	for range 3 {
		_, err := s.generator.Generate(models.EntityCube)
		require.NoError(t, err)
	}
	sphere, err := s.generator.Generate(models.EntitySphere)
	require.NoError(t, err)

	bare := s.entities.Entities()[0]
	bare.Behaviours().Remove(models.BehaviourPoints)
	sphere.Behaviours().Add(behaviour.NewExplode(2, behaviour.DefaultExplodeDuration, tween.New(), nil, log.NewNop()))

	before := s.summarize()
	require.NoError(t, s.state.Save(ctx))

	_, err = s.state.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, s.summarize())

	restored, ok := s.entities.Find(bare.ID())
	require.True(t, ok)
	assert.Equal(t, 0, restored.Behaviours().Len(), "config default is not reattached")
}

func TestLoadReplacesLiveScene(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()

	require.NoError(t, s.state.Clear(ctx))
	_, err := s.generator.Generate(models.EntityCube)
	require.NoError(t, err)

	n, err := s.state.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, s.entities.Len())
}

func TestLoadMissingOrMalformedRecord(t *testing.T) {
	ctx := context.Background()

	for name, doc := range map[string]*string{
		"missing":   nil,
		"empty":     ptr(""),
		"malformed": ptr("{entities:"),
		"null":      ptr(`{"entities":null}`),
	} {
		t.Run(name, func(t *testing.T) {
			s := newScene(t)
			if doc != nil {
				require.NoError(t, s.store.Set(ctx, DefaultKey, *doc))
			}

			n, err := s.state.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, n)
			assert.Equal(t, 0, s.entities.Len())
		})
	}
}

func TestLoadSkipsBadRecords(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()

	doc := `{"entities":[
		{"id":"a","kind":"cube","position":{"x":1,"y":0,"z":0},"scale":0.5,"behaviours":[{"kind":"explode"}]},
		{"id":"b","kind":"pyramid","position":{"x":0,"y":0,"z":0},"scale":1,"behaviours":[]},
		"garbage",
		{"id":"c","kind":"sphere","position":{"x":0,"y":0,"z":2},"scale":0.7,"behaviours":[{"kind":"points"},{"kind":"teleport"}]}
	]}`
	require.NoError(t, s.store.Set(ctx, DefaultKey, doc))

	n, err := s.state.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got := s.summarize()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, []models.BehaviourKind{models.BehaviourExplode}, got[0].Behaviours)

	assert.Equal(t, "c", got[1].ID, "an unknown behaviour does not drop its entity")
	assert.Equal(t, models.EntitySphere, got[1].Kind)
	assert.Equal(t, []models.BehaviourKind{models.BehaviourPoints}, got[1].Behaviours)
}

func TestDecodeKeepsUnknownBehaviourKinds(t *testing.T) {
	snapshot, skipped, err := Decode(`{"entities":[{"id":"keep","kind":"cube","position":{"x":0,"y":0,"z":0},"scale":1,"behaviours":[{"kind":"points"},{"kind":"teleport"}]}]}`)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, snapshot.Entities, 1)

	behaviours := snapshot.Entities[0].Behaviours
	require.Len(t, behaviours, 2)
	assert.Equal(t, models.BehaviourPoints, behaviours[0].Kind)
	assert.Equal(t, models.BehaviourUnknown, behaviours[1].Kind)
	assert.Equal(t, "teleport", behaviours[1].Name())
}

func TestSaveWritesDocumentShape(t *testing.T) {
	s := newScene(t)
	ctx := context.Background()

	cube, err := s.generator.GenerateAt(models.EntityCube, models.Vec3(1, 2, 3), entity.WithID("cube-1"))
	require.NoError(t, err)
	cube.SetUniformScale(0.8)
	require.NoError(t, s.state.Save(ctx))

	doc, err := s.state.Print(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"entities":[{"id":"cube-1","kind":"cube","position":{"x":1,"y":2,"z":3},"scale":0.8,"behaviours":[{"kind":"points"}]}]}`, doc)

	require.NoError(t, s.state.Clear(ctx))
	doc, err = s.state.Print(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"entities":[]}`, doc)
	assert.Equal(t, 1, s.entities.Len(), "clear leaves the live scene alone")
}

func TestSaveUsesXAxisForNonUniformScale(t *testing.T) {
	s := newScene(t)
	cube, err := s.generator.Generate(models.EntityCube)
	require.NoError(t, err)
	cube.SetScale(models.Vec3(0.6, 0.9, 0.9))

	snapshot := s.state.Capture()
	require.Len(t, snapshot.Entities, 1)
	assert.InDelta(t, 0.6, snapshot.Entities[0].Scale, 1e-9)
}

func TestDecodeReportsSkippedRecords(t *testing.T) {
	snapshot, skipped, err := Decode(`{"entities":[{"id":"x","kind":"cube"},{"kind":7}]}`)
	require.NoError(t, err)
	require.Len(t, snapshot.Entities, 1)
	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].Index)

	var syntax *json.UnmarshalTypeError
	assert.ErrorAs(t, skipped[0], &syntax)
}

func ptr(s string) *string { return &s }

func TestSaveRecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := newSceneWithStore(t, storage.NewFileStore(path, log.NewNop()))

	n, err := s.state.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	cube, err := s.generator.Generate(models.EntityCube)
	require.NoError(t, err)
	require.NoError(t, s.state.Save(ctx))

	s.entities.Clear()
	n, err = s.state.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, cube.ID(), s.summarize()[0].ID)

	require.NoError(t, s.state.Clear(ctx))

	corrupt, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	require.Len(t, corrupt, 1)
	data, err := os.ReadFile(corrupt[0])
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}
