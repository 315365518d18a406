package injector

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/sceneedit/internal/config"
	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/ui"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeEditorRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "redis"
	_, err := InitializeEditor(cfg, log.NewNop(), ui.Detached{}, behaviour.Silent)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = config.Default()
	cfg.Selection.MoveLayers = []string{"sky"}
	_, err = InitializeEditor(cfg, log.NewNop(), ui.Detached{}, behaviour.Silent)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSceneSurvivesRestartOfTheEditor(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Storage.Driver = config.StorageFile
	cfg.Storage.Path = filepath.Join(t.TempDir(), "scene.json")
	cfg.Scene.Seed = 5

	first, err := InitializeEditor(cfg, log.NewNop(), ui.Detached{}, behaviour.Silent)
	require.NoError(t, err)
	require.NoError(t, first.Start(ctx))

	cube, err := first.GUI.Generate(ctx, models.EntityCube)
	require.NoError(t, err)
	sphere, err := first.GUI.Generate(ctx, models.EntitySphere)
	require.NoError(t, err)
	require.NoError(t, first.GUI.Select(sphere.ID()))
	require.NoError(t, first.GUI.ToggleBehaviour(ctx, models.BehaviourPoints, true))

	second, err := InitializeEditor(cfg, log.NewNop(), ui.Detached{}, behaviour.Silent)
	require.NoError(t, err)
	require.NoError(t, second.Start(ctx))
	require.Equal(t, 2, second.Entities.Len())

	restored, ok := second.Entities.Find(cube.ID())
	require.True(t, ok)
	assert.Equal(t, models.EntityCube, restored.Kind())
	assert.True(t, restored.Position().ApproxEqual(cube.Position(), 1e-9))
	assert.InDelta(t, cube.UniformScale(), restored.UniformScale(), 1e-9)
	assert.True(t, restored.Behaviours().Contains(models.BehaviourPoints))

	restored, ok = second.Entities.Find(sphere.ID())
	require.True(t, ok)
	assert.True(t, restored.Behaviours().Contains(models.BehaviourExplode))
	assert.True(t, restored.Behaviours().Contains(models.BehaviourPoints))
}

func TestVerboseEditorLogsSignalDeliveries(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.Default()
	cfg.Scene.Verbose = true

	ed, err := InitializeEditor(cfg, log.FromZap(zap.New(core), log.LevelDebug), ui.Detached{}, behaviour.Silent)
	require.NoError(t, err)
	require.NoError(t, ed.Start(ctx))

	topics := make(map[string]bool)
	for _, e := range logs.FilterMessage("signal delivered").All() {
		topics[e.ContextMap()["topic"].(string)] = true
	}
	assert.True(t, topics["mode.changed"])
	assert.True(t, topics["selection.changed"])
}
