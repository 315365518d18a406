//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/sceneedit/internal/config"
	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/editor"
	"github.com/zeusync/sceneedit/internal/ui"
)

func InitializeEditor(cfg *config.Config, logger log.Log, pointer ui.PointerSource, cues behaviour.CuePlayer) (*editor.Editor, error) {
	wire.Build(editor.ProviderSet)
	return nil, nil
}
