package tween

import (
	"time"

	"github.com/zeusync/sceneedit/internal/core/models"
)

var _ Animator = (*Tweener)(nil)

type key struct {
	target string
	kind   Kind
}

type op struct {
	key        key
	born       uint64
	elapsed    time.Duration
	duration   time.Duration
	apply      func(progress float64)
	onComplete func()
	dead       bool
}

// Tweener is a tick-driven Animator. It is not safe for concurrent use; all
// calls happen on the scene's tick thread.
type Tweener struct {
	ops   []*op
	index map[key]*op
	ease  Ease
	frame uint64
}

type Option func(*Tweener)

func WithEase(e Ease) Option {
	return func(t *Tweener) { t.ease = e }
}

func New(opts ...Option) *Tweener {
	t := &Tweener{
		index: make(map[key]*op),
		ease:  OutQuad,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tweener) ScaleTo(target Scalable, to models.Vector3, duration time.Duration, onComplete func()) {
	from := target.Scale()
	t.start(key{target.TweenID(), KindScale}, duration, func(p float64) {
		if p >= 1 {
			target.SetScale(to)
			return
		}
		target.SetScale(from.Lerp(to, p))
	}, onComplete)
}

func (t *Tweener) ColorTo(target Colorable, to models.Color, duration time.Duration, onComplete func()) {
	from := target.Color()
	t.start(key{target.TweenID(), KindColor}, duration, func(p float64) {
		if p >= 1 {
			target.SetColor(to)
			return
		}
		target.SetColor(from.Lerp(to, p))
	}, onComplete)
}

func (t *Tweener) MoveTo(target Movable, to models.Vector3, duration time.Duration, onComplete func()) {
	from := target.Position()
	t.start(key{target.TweenID(), KindMove}, duration, func(p float64) {
		if p >= 1 {
			target.SetPosition(to)
			return
		}
		target.SetPosition(from.Lerp(to, p))
	}, onComplete)
}

func (t *Tweener) Cancel(target Target) {
	id := target.TweenID()
	for _, k := range []Kind{KindScale, KindColor, KindMove} {
		if o, ok := t.index[key{id, k}]; ok {
			o.dead = true
			delete(t.index, o.key)
		}
	}
}

func (t *Tweener) Active(target Target, kind Kind) bool {
	_, ok := t.index[key{target.TweenID(), kind}]
	return ok
}

// Len returns the number of ops in flight.
func (t *Tweener) Len() int { return len(t.index) }

// Tick advances every op that was started before this tick and fires the
// completions of those that finished, in start order.
func (t *Tweener) Tick(dt time.Duration) {
	t.frame++

	var completed []func()
	for _, o := range t.ops {
		if o.dead || o.born >= t.frame {
			continue
		}
		o.elapsed += dt
		if o.duration <= 0 || o.elapsed >= o.duration {
			o.apply(1)
			o.dead = true
			delete(t.index, o.key)
			if o.onComplete != nil {
				completed = append(completed, o.onComplete)
			}
			continue
		}
		o.apply(t.ease(float64(o.elapsed) / float64(o.duration)))
	}

	t.compact()

	for _, fn := range completed {
		fn()
	}
}

func (t *Tweener) start(k key, duration time.Duration, apply func(float64), onComplete func()) {
	if old, ok := t.index[k]; ok {
		old.dead = true
	}
	o := &op{
		key:        k,
		born:       t.frame,
		duration:   duration,
		apply:      apply,
		onComplete: onComplete,
	}
	t.index[k] = o
	t.ops = append(t.ops, o)
}

func (t *Tweener) compact() {
	live := t.ops[:0]
	for _, o := range t.ops {
		if !o.dead {
			live = append(live, o)
		}
	}
	for i := len(live); i < len(t.ops); i++ {
		t.ops[i] = nil
	}
	t.ops = live
}
