package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

func TestStepRunsPostedWorkBeforeTickers(t *testing.T) {
	l := NewLoop(0, log.NewNop())
	var trace []string

	l.Add(TickFunc(func(dt time.Duration) { trace = append(trace, "a") }))
	l.Add(TickFunc(func(dt time.Duration) { trace = append(trace, "b") }))
	l.Post(func() { trace = append(trace, "posted") })

	l.Step(time.Millisecond)
	l.Step(time.Millisecond)

	assert.Equal(t, []string{"posted", "a", "b", "a", "b"}, trace)
	assert.Equal(t, uint64(2), l.Frame())
}

func TestWorkPostedDuringStepWaitsForNextFrame(t *testing.T) {
	l := NewLoop(0, log.NewNop())
	ran := 0
	l.Post(func() {
		l.Post(func() { ran++ })
	})

	l.Step(0)
	assert.Equal(t, 0, ran)
	l.Step(0)
	assert.Equal(t, 1, ran)
}

func TestRunServesCallsUntilCancelled(t *testing.T) {
	l := NewLoop(200, log.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	want := errors.New("boom")
	err := l.Call(context.Background(), func() error { return want })
	assert.ErrorIs(t, err, want)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestCallHonoursContext(t *testing.T) {
	l := NewLoop(0, log.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Call(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
