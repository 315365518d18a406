package tween

import (
	"time"

	"github.com/zeusync/sceneedit/internal/core/models"
)

// Kind separates independent animation channels on one target.
type Kind uint8

const (
	KindScale Kind = iota
	KindColor
	KindMove
)

func (k Kind) String() string {
	switch k {
	case KindScale:
		return "scale"
	case KindColor:
		return "color"
	case KindMove:
		return "move"
	default:
		return "unknown"
	}
}

// Target is anything that can be animated. TweenID must be stable for the
// target's lifetime; it keys the single in-flight slot per Kind.
type Target interface {
	TweenID() string
}

type Scalable interface {
	Target
	Scale() models.Vector3
	SetScale(models.Vector3)
}

type Colorable interface {
	Target
	Color() models.Color
	SetColor(models.Color)
}

type Movable interface {
	Target
	Position() models.Vector3
	SetPosition(models.Vector3)
}

// Animator is a fire-and-forget animation service. A request for a (target, kind)
// pair that already has an op in flight replaces it; the replaced op's completion
// never fires. onComplete may be nil.
type Animator interface {
	ScaleTo(target Scalable, to models.Vector3, duration time.Duration, onComplete func())
	ColorTo(target Colorable, to models.Color, duration time.Duration, onComplete func())
	MoveTo(target Movable, to models.Vector3, duration time.Duration, onComplete func())

	// Cancel drops every op of target without firing completions.
	Cancel(target Target)
	Active(target Target, kind Kind) bool
}

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

func OutQuad(t float64) float64 { return t * (2 - t) }
