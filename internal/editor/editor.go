package editor

import (
	"context"

	"github.com/zeusync/sceneedit/internal/config"
	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/entity"
	"github.com/zeusync/sceneedit/internal/core/events/bus"
	"github.com/zeusync/sceneedit/internal/core/mode"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/core/state"
	"github.com/zeusync/sceneedit/internal/core/storage"
	"github.com/zeusync/sceneedit/internal/core/tween"
	"github.com/zeusync/sceneedit/internal/engine"
	"github.com/zeusync/sceneedit/internal/game"
	"github.com/zeusync/sceneedit/internal/gui"
	"github.com/zeusync/sceneedit/internal/ui"
)

// Editor is the assembled scene editor. Every method except those on Loop must
// be called from the loop thread.
type Editor struct {
	Config     *config.Config
	Logger     log.Log
	Loop       *engine.Loop
	Tweener    *tween.Tweener
	Store      storage.KeyValue
	Behaviours *behaviour.Factory
	Entities   *entity.Manager
	Generator  *entity.Generator
	State      *state.Manager
	Modes      *mode.Manager
	UI         *ui.Manager
	Game       *game.Manager
	GUI        *gui.Manager
	Score      *gui.Score
}

func New(
	cfg *config.Config,
	logger log.Log,
	loop *engine.Loop,
	tweener *tween.Tweener,
	store storage.KeyValue,
	behaviours *behaviour.Factory,
	entities *entity.Manager,
	generator *entity.Generator,
	st *state.Manager,
	modes *mode.Manager,
	uiManager *ui.Manager,
	gameManager *game.Manager,
	guiManager *gui.Manager,
	score *gui.Score,
) *Editor {
	if cfg.Scene.Verbose {
		obs := bus.NewLogObserver(logger)
		modes.Observe(obs)
		uiManager.Selector().Observe(obs)
		score.Observe(obs)
	}

	return &Editor{
		Config:     cfg,
		Logger:     logger,
		Loop:       loop,
		Tweener:    tweener,
		Store:      store,
		Behaviours: behaviours,
		Entities:   entities,
		Generator:  generator,
		State:      st,
		Modes:      modes,
		UI:         uiManager,
		Game:       gameManager,
		GUI:        guiManager,
		Score:      score,
	}
}

func (e *Editor) Selector() *ui.Selector { return e.UI.Selector() }

// Start loads the saved scene and brings every view up to date.
func (e *Editor) Start(ctx context.Context) error {
	return e.Game.Start(ctx)
}

// Do runs fn on the loop thread and waits for it.
func (e *Editor) Do(ctx context.Context, fn func(*Editor) error) error {
	return e.Loop.Call(ctx, func() error { return fn(e) })
}
