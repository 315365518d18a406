package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/sceneedit/internal/config"
	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/entity"
	"github.com/zeusync/sceneedit/internal/core/mode"
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/editor"
	"github.com/zeusync/sceneedit/internal/gui"
	"github.com/zeusync/sceneedit/internal/injector"
	"github.com/zeusync/sceneedit/internal/ui"
)

var area = models.Box{Center: models.Vec3(0, 0.5, 0), Size: models.Vec3(20, 0, 10)}

func newEditor(t *testing.T) (*editor.Editor, *Pointer) {
	t.Helper()
	cfg := config.Default()
	cfg.Scene.Seed = 7

	pointer := NewPointer(NewProjection(area, 80, 21))
	ed, err := injector.InitializeEditor(cfg, log.NewNop(), pointer, behaviour.Silent)
	require.NoError(t, err)
	pointer.Attach(ed.Entities.Entities)
	return ed, pointer
}

func TestProjectionMapsCellsToWorld(t *testing.T) {
	p := NewProjection(area, 80, 21)
	assert.Equal(t, 20, p.Rows())
	assert.Equal(t, 80, p.Cols())

	col, row := p.Cell(models.Vec3(-10, 0.5, -5))
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)

	col, row = p.Cell(models.Vec3(100, 0.5, 100))
	assert.Equal(t, 79, col)
	assert.Equal(t, 19, row)

	w := p.World(40, 10)
	assert.InDelta(t, 0.125, w.X, 1e-9)
	assert.InDelta(t, 0.25, w.Z, 1e-9)
	assert.InDelta(t, 0.0, w.Y, 1e-9)

	col, row = p.Cell(w)
	assert.Equal(t, 40, col)
	assert.Equal(t, 10, row)

	assert.True(t, p.InScene(0, 19))
	assert.False(t, p.InScene(0, 20), "hud row")
	assert.False(t, p.InScene(-1, 0))
}

func TestPointerHitsEntityBeforeGround(t *testing.T) {
	ed, pointer := newEditor(t)
	e, err := ed.Generator.GenerateAt(models.EntityCube, models.Vec3(2, 0.5, 1))
	require.NoError(t, err)

	col, row := pointer.Projection().Cell(e.Position())
	pointer.MoveTo(col, row)
	assert.False(t, pointer.IsPointerOverUI())

	raycaster := ui.NewRaycaster(pointer, ui.DefaultRaycastDistance)
	hit, ok := raycaster.Hit(ui.MaskAll)
	require.True(t, ok)
	assert.Equal(t, ui.LayerEntities, hit.Layer)
	assert.Equal(t, e.ID(), hit.EntityID)

	ground, ok := raycaster.Hit(ui.MaskGround)
	require.True(t, ok)
	assert.Equal(t, ui.LayerGround, ground.Layer)
	assert.InDelta(t, 0.0, ground.Point.Y, 1e-9)
	assert.Greater(t, ground.Distance, hit.Distance)

	pointer.MoveTo(0, 0)
	hit, ok = raycaster.Hit(ui.MaskAll)
	require.True(t, ok)
	assert.Equal(t, ui.LayerGround, hit.Layer)

	pointer.MoveTo(0, 20)
	assert.True(t, pointer.IsPointerOverUI())
}

func TestGesturePhases(t *testing.T) {
	var g gesture

	_, ok := g.update(1, 1, false)
	assert.False(t, ok, "hover")

	steps := []struct {
		col, row int
		down     bool
		want     ui.Phase
	}{
		{1, 1, true, ui.PhaseBegan},
		{1, 1, true, ui.PhaseStationary},
		{2, 1, true, ui.PhaseMoved},
		{2, 1, false, ui.PhaseEnded},
	}
	for _, s := range steps {
		phase, ok := g.update(s.col, s.row, s.down)
		require.True(t, ok)
		assert.Equal(t, s.want, phase)
	}

	_, ok = g.update(2, 1, false)
	assert.False(t, ok)
}

func TestHudLine(t *testing.T) {
	ed, _ := newEditor(t)
	hud := gui.NewStateView()
	ed.GUI.AddView(hud)

	line := hudLine(hud.Snapshot(), "")
	assert.Contains(t, line, "Editor")
	assert.Contains(t, line, "points 0")
	assert.NotContains(t, line, "explode")

	e, err := ed.Generator.Generate(models.EntityCube)
	require.NoError(t, err)
	ed.Selector().Select(e, false)

	line = hudLine(hud.Snapshot(), "nope")
	assert.Contains(t, line, "[ ] explode")
	assert.Contains(t, line, "[x] points")
	assert.Contains(t, line, "| nope")
}

func TestTerminalDrivesEditor(t *testing.T) {
	ed, pointer := newEditor(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = ed.Loop.Run(ctx) }()
	require.NoError(t, ed.Do(ctx, func(ed *editor.Editor) error { return ed.Start(ctx) }))

	screen := tcell.NewSimulationScreen("UTF-8")
	term := New(screen, ed, pointer, log.NewNop())
	term.interval = 5 * time.Millisecond
	require.NoError(t, term.Init(ctx))

	done := make(chan error, 1)
	go func() { done <- term.Run(ctx) }()

	entities := func() []*entity.Entity {
		var list []*entity.Entity
		_ = ed.Do(ctx, func(ed *editor.Editor) error {
			list = ed.Entities.Entities()
			return nil
		})
		return list
	}

	screen.InjectKey(tcell.KeyRune, 'c', tcell.ModNone)
	require.Eventually(t, func() bool { return len(entities()) == 1 }, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		var hud gui.State
		_ = ed.Do(ctx, func(*editor.Editor) error {
			hud = term.hud.Snapshot()
			return nil
		})
		return hud.ModeLabel == "Editor"
	}, time.Second, 5*time.Millisecond)

	var col, row int
	require.NoError(t, ed.Do(ctx, func(ed *editor.Editor) error {
		col, row = pointer.Projection().Cell(ed.Entities.Entities()[0].Position())
		return nil
	}))
	screen.InjectMouse(col, row, tcell.Button1, tcell.ModNone)
	screen.InjectMouse(col, row, tcell.ButtonNone, tcell.ModNone)

	selected := func() *entity.Entity {
		var s *entity.Entity
		_ = ed.Do(ctx, func(ed *editor.Editor) error {
			s = ed.Selector().Selected()
			return nil
		})
		return s
	}
	require.Eventually(t, func() bool { return selected() != nil }, time.Second, 5*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'e', tcell.ModNone)
	require.Eventually(t, func() bool {
		var on bool
		_ = ed.Do(ctx, func(ed *editor.Editor) error {
			on = ed.Entities.Entities()[0].Behaviours().Contains(models.BehaviourExplode)
			return nil
		})
		return on
	}, time.Second, 5*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 't', tcell.ModNone)
	require.Eventually(t, func() bool {
		var md mode.Mode
		_ = ed.Do(ctx, func(ed *editor.Editor) error {
			md = ed.Modes.Mode()
			return nil
		})
		return md == mode.Test
	}, time.Second, 5*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("terminal did not quit")
	}
}

func TestTerminalDrawsSceneAndHud(t *testing.T) {
	ed, pointer := newEditor(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = ed.Loop.Run(ctx) }()
	require.NoError(t, ed.Do(ctx, func(ed *editor.Editor) error { return ed.Start(ctx) }))

	screen := tcell.NewSimulationScreen("UTF-8")
	term := New(screen, ed, pointer, log.NewNop())
	require.NoError(t, term.Init(ctx))
	defer screen.Fini()

	require.NoError(t, ed.Do(ctx, func(ed *editor.Editor) error {
		_, err := ed.GUI.Generate(ctx, models.EntityCube)
		return err
	}))

	f, err := term.capture(ctx)
	require.NoError(t, err)
	require.Len(t, f.sprites, 1)
	term.draw(f)

	cells, w, h := screen.GetContents()
	var hud strings.Builder
	found := false
	for i, c := range cells {
		if i/w == h-1 && len(c.Runes) > 0 {
			hud.WriteRune(c.Runes[0])
		}
		if len(c.Runes) > 0 && c.Runes[0] == '■' {
			found = true
		}
	}
	assert.True(t, found, "cube glyph is drawn")
	assert.Contains(t, hud.String(), "Editor")
	assert.Contains(t, hud.String(), "points 0")
}
