package engine

import (
	"context"
	"sync"
	"time"

	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

const DefaultTickRate = 60

// Ticker is advanced once per frame.
type Ticker interface {
	Tick(dt time.Duration)
}

// TickFunc adapts a function to Ticker.
type TickFunc func(dt time.Duration)

func (f TickFunc) Tick(dt time.Duration) { f(dt) }

// Loop is the single logical thread all scene mutation runs on. Other
// goroutines hand work to it with Post.
type Loop struct {
	mx      sync.Mutex
	posted  []func()
	tickers []Ticker
	frame   uint64
	rate    int
	logger  log.Log
}

func NewLoop(rate int, logger log.Log) *Loop {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &Loop{rate: rate, logger: logger.Named("loop")}
}

// Add registers t; tickers run in registration order. Call from the loop thread.
func (l *Loop) Add(t Ticker) {
	l.tickers = append(l.tickers, t)
}

// Post queues fn to run at the start of the next frame. Safe from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mx.Lock()
	l.posted = append(l.posted, fn)
	l.mx.Unlock()
}

// Call runs fn on the loop thread and waits for its result.
func (l *Loop) Call(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	l.Post(func() { done <- fn() })

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Step runs one frame: queued work first, then every ticker.
func (l *Loop) Step(dt time.Duration) {
	l.mx.Lock()
	posted := l.posted
	l.posted = nil
	l.mx.Unlock()

	for _, fn := range posted {
		fn()
	}

	l.frame++
	for _, t := range l.tickers {
		t.Tick(dt)
	}
}

// Frame is the number of completed steps.
func (l *Loop) Frame() uint64 { return l.frame }

// Run steps the loop at its tick rate until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(l.rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.logger.Info("loop started", log.Int("rate", l.rate))
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("loop stopped", log.Uint64("frames", l.frame))
			return nil
		case now := <-ticker.C:
			l.Step(now.Sub(last))
			last = now
		}
	}
}
