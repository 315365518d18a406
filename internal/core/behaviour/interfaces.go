package behaviour

import (
	"errors"

	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/tween"
)

var (
	ErrNilBehaviour       = errors.New("behaviour is nil")
	ErrInvalidKind        = errors.New("behaviour kind is not valid")
	ErrDuplicatePrototype = errors.New("behaviour prototype already registered")
	ErrUnknownPrototype   = errors.New("no behaviour prototype registered")
)

// Target is the entity a behaviour acts upon.
type Target interface {
	tween.Scalable
	ID() string
	Destroy()
}

// Behaviour is a discrete action attachable to an entity. Implementations are
// prototypes: the factory hands out clones, never the registered value itself.
type Behaviour interface {
	Kind() models.BehaviourKind
	Do(target Target)
	Clone() Behaviour
}

// Releaser is implemented by behaviours that must be torn down when detached.
// A released behaviour is not reusable.
type Releaser interface {
	Release()
}

// Scorer receives points awarded by behaviours.
type Scorer interface {
	AddPoints(n int)
}

// Cue names a short audio effect.
type Cue string

const (
	CueBoom   Cue = "boom"
	CuePoints Cue = "points"
)

// CuePlayer plays audio cues. Playback is best effort.
type CuePlayer interface {
	Play(cue Cue)
}

type silentCues struct{}

func (silentCues) Play(Cue) {}

// Silent is a CuePlayer that does nothing.
var Silent CuePlayer = silentCues{}
