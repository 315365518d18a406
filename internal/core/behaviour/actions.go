package behaviour

import (
	"time"

	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/core/tween"
)

const (
	DefaultExplodeScale    = 2.0
	DefaultExplodeDuration = time.Second
	DefaultPointsAmount    = 100
)

var (
	_ Behaviour = (*Explode)(nil)
	_ Releaser  = (*Explode)(nil)
	_ Behaviour = (*Points)(nil)
)

// Explode inflates the target like a balloon and destroys it once the
// animation completes.
type Explode struct {
	scale    float64
	duration time.Duration
	animator tween.Animator
	cues     CuePlayer
	logger   log.Log
	released bool
}

func NewExplode(scale float64, duration time.Duration, animator tween.Animator, cues CuePlayer, logger log.Log) *Explode {
	if cues == nil {
		cues = Silent
	}
	return &Explode{
		scale:    scale,
		duration: duration,
		animator: animator,
		cues:     cues,
		logger:   logger,
	}
}

func (e *Explode) Kind() models.BehaviourKind { return models.BehaviourExplode }

func (e *Explode) Clone() Behaviour {
	c := *e
	c.released = false
	return &c
}

func (e *Explode) Do(target Target) {
	if e.released {
		e.logger.Warn("explode behaviour used after release", log.String("entity", target.ID()))
		return
	}

	e.animator.ScaleTo(target, models.Uniform(e.scale), e.duration, func() {
		target.Destroy()
		e.cues.Play(CueBoom)
		e.logger.Debug("boom", log.String("entity", target.ID()))
	})
}

func (e *Explode) Release() {
	e.released = true
}

// Points awards a fixed amount of points every time it runs.
type Points struct {
	amount int
	scorer Scorer
	cues   CuePlayer
	logger log.Log
}

func NewPoints(amount int, scorer Scorer, cues CuePlayer, logger log.Log) *Points {
	if cues == nil {
		cues = Silent
	}
	return &Points{amount: amount, scorer: scorer, cues: cues, logger: logger}
}

func (p *Points) Kind() models.BehaviourKind { return models.BehaviourPoints }

func (p *Points) Clone() Behaviour {
	c := *p
	return &c
}

func (p *Points) Do(target Target) {
	p.scorer.AddPoints(p.amount)
	p.cues.Play(CuePoints)
	p.logger.Debug("giving points", log.String("entity", target.ID()), log.Int("points", p.amount))
}
