package editor

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/wire"
	"github.com/zeusync/sceneedit/internal/config"
	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/entity"
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

// ProviderSet builds an Editor from a config, a logger, a pointer source and
// an audio cue player.
var ProviderSet = wire.NewSet(
	ProvideRand,
	ProvideTweener,
	ProvideStore,
	gui.NewScore,
	ProvideBehaviours,
	ProvideRuntime,
	entity.NewManager,
	ProvideEntityFactory,
	ProvideGenerator,
	ProvideState,
	mode.NewManager,
	ProvideRaycaster,
	ProvideSelector,
	ProvideMover,
	ui.NewManager,
	game.NewManager,
	ProvideGUI,
	ProvideLoop,
	New,
	wire.Bind(new(tween.Animator), new(*tween.Tweener)),
	wire.Bind(new(ui.Saver), new(*state.Manager)),
	wire.Bind(new(ui.Lookup), new(*entity.Manager)),
	wire.Bind(new(gui.Restarter), new(*game.Manager)),
	wire.Bind(new(behaviour.Scorer), new(*gui.Score)),
)

func ProvideRand(cfg *config.Config) *rand.Rand {
	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func ProvideTweener() *tween.Tweener {
	return tween.New()
}

func ProvideStore(cfg *config.Config, logger log.Log) (storage.KeyValue, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return storage.NewMemoryStore(cfg.Storage.Shards), nil
	case config.StorageFile:
		return storage.NewFileStore(cfg.Storage.Path, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.Storage.Driver)
	}
}

// ProvideBehaviours registers every behaviour prototype.
func ProvideBehaviours(cfg *config.Config, animator tween.Animator, scorer behaviour.Scorer, cues behaviour.CuePlayer, logger log.Log) (*behaviour.Factory, error) {
	f := behaviour.NewFactory(logger.Named("behaviours"))

	explode := cfg.Behaviours.Explode
	if err := f.Register(behaviour.NewExplode(explode.Scale, explode.Duration, animator, cues, logger)); err != nil {
		return nil, err
	}
	if err := f.Register(behaviour.NewPoints(cfg.Behaviours.Points.Amount, scorer, cues, logger)); err != nil {
		return nil, err
	}
	return f, nil
}

func ProvideRuntime(cfg *config.Config, animator tween.Animator, rnd *rand.Rand, logger log.Log) *entity.Runtime {
	templates := make(map[string]entity.Template, len(cfg.Templates))
	for name, t := range cfg.Templates {
		templates[name] = entity.Template{
			Name:       name,
			Color:      t.Color,
			RandomTint: t.RandomTint,
			Size:       t.Size,
		}
	}

	return &entity.Runtime{
		Templates:         templates,
		Animator:          animator,
		Rand:              rnd,
		ScaleRange:        entity.Range{Min: cfg.Scene.ScaleRange[0], Max: cfg.Scene.ScaleRange[1]},
		HighlightDuration: cfg.Selection.HighlightDuration,
		Logger:            logger.Named("entity"),
	}
}

// ProvideEntityFactory registers one entity config per configured kind. A
// duplicate kind is logged and skipped.
func ProvideEntityFactory(cfg *config.Config, manager *entity.Manager, rt *entity.Runtime, behaviours *behaviour.Factory, logger log.Log) (*entity.Factory, error) {
	f := entity.NewFactory(manager, rt, logger.Named("entities"))

	for _, ec := range cfg.Entities {
		var prototype behaviour.Behaviour
		kind, ok, err := ec.Behaviour()
		if err != nil {
			return nil, err
		}
		if ok {
			prototype, ok = behaviours.Prototype(kind)
			if !ok {
				return nil, fmt.Errorf("%w: %s", behaviour.ErrUnknownPrototype, kind)
			}
		}

		_ = f.Register(entity.NewConfig(ec.Kind, ec.Template, prototype))
	}
	return f, nil
}

func ProvideGenerator(cfg *config.Config, factory *entity.Factory, rnd *rand.Rand, logger log.Log) *entity.Generator {
	return entity.NewGenerator(factory, cfg.Scene.Area.Box(), cfg.Scene.Root, rnd, logger.Named("generator"))
}

func ProvideState(cfg *config.Config, store storage.KeyValue, entities *entity.Manager, generator *entity.Generator, behaviours *behaviour.Factory, logger log.Log) *state.Manager {
	return state.NewManager(store, entities, generator, behaviours, logger,
		state.WithKey(cfg.Storage.Key),
		state.WithVerbose(cfg.Scene.Verbose),
	)
}

func ProvideRaycaster(cfg *config.Config, source ui.PointerSource) *ui.Raycaster {
	return ui.NewRaycaster(source, cfg.Selection.MaxDistance)
}

func ProvideSelector(cfg *config.Config, raycaster *ui.Raycaster, lookup ui.Lookup, logger log.Log) (*ui.Selector, error) {
	mask, err := ui.ParseLayerMask(cfg.Selection.SelectLayers)
	if err != nil {
		return nil, fmt.Errorf("%w: select layers: %v", config.ErrInvalidConfig, err)
	}
	return ui.NewSelector(raycaster, mask, lookup, logger), nil
}

func ProvideMover(cfg *config.Config, modes *mode.Manager, selector *ui.Selector, raycaster *ui.Raycaster, animator tween.Animator, saver ui.Saver, logger log.Log) (*ui.Mover, error) {
	mask, err := ui.ParseLayerMask(cfg.Selection.MoveLayers)
	if err != nil {
		return nil, fmt.Errorf("%w: move layers: %v", config.ErrInvalidConfig, err)
	}
	return ui.NewMover(modes, selector, raycaster, mask, animator, cfg.Selection.MoveDuration, saver, logger), nil
}

func ProvideGUI(modes *mode.Manager, restarter gui.Restarter, generator *entity.Generator, entities *entity.Manager, uiManager *ui.Manager, score *gui.Score, behaviours *behaviour.Factory, logger log.Log) *gui.Manager {
	return gui.NewManager(modes, restarter, generator, entities, uiManager, score, behaviours.Kinds(), logger)
}

// ProvideLoop builds the tick loop with animations advanced every frame.
func ProvideLoop(cfg *config.Config, tweener *tween.Tweener, logger log.Log) *engine.Loop {
	loop := engine.NewLoop(cfg.Loop.TickRate, logger)
	loop.Add(tweener)
	return loop
}
