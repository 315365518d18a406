package tween

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/sceneedit/internal/core/models"
)

type box struct {
	id    string
	scale models.Vector3
	color models.Color
	pos   models.Vector3
}

func (b *box) TweenID() string              { return b.id }
func (b *box) Scale() models.Vector3        { return b.scale }
func (b *box) SetScale(v models.Vector3)    { b.scale = v }
func (b *box) Color() models.Color          { return b.color }
func (b *box) SetColor(c models.Color)      { b.color = c }
func (b *box) Position() models.Vector3     { return b.pos }
func (b *box) SetPosition(p models.Vector3) { b.pos = p }

func TestScaleToReachesTargetAndCompletes(t *testing.T) {
	tw := New(WithEase(Linear))
	b := &box{id: "a", scale: models.Uniform(1)}
	done := 0

	tw.ScaleTo(b, models.Uniform(2), time.Second, func() { done++ })
	assert.True(t, tw.Active(b, KindScale))

	tw.Tick(500 * time.Millisecond)
	assert.InDelta(t, 1.5, b.scale.X, 1e-9)
	assert.Equal(t, 0, done)

	tw.Tick(500 * time.Millisecond)
	assert.Equal(t, models.Uniform(2), b.scale)
	assert.Equal(t, 1, done)
	assert.False(t, tw.Active(b, KindScale))
	assert.Equal(t, 0, tw.Len())
}

func TestLastRequestWins(t *testing.T) {
	tw := New()
	b := &box{id: "a", color: models.Black}
	first, second := 0, 0

	tw.ColorTo(b, models.White, time.Second, func() { first++ })
	tw.ColorTo(b, models.Black, 100*time.Millisecond, func() { second++ })
	assert.Equal(t, 1, tw.Len())

	for i := 0; i < 20; i++ {
		tw.Tick(100 * time.Millisecond)
	}
	assert.Equal(t, 0, first, "replaced op must not complete")
	assert.Equal(t, 1, second)
	assert.Equal(t, models.Black, b.color)
}

func TestKindsAreIndependent(t *testing.T) {
	tw := New()
	b := &box{id: "a"}
	tw.MoveTo(b, models.Vec3(1, 0, 0), time.Second, nil)
	tw.ScaleTo(b, models.Uniform(3), time.Second, nil)
	assert.Equal(t, 2, tw.Len())

	tw.Cancel(b)
	assert.Equal(t, 0, tw.Len())
	tw.Tick(2 * time.Second)
	assert.Equal(t, models.Zero, b.pos)
}

func TestCompletionRunsOnLaterTick(t *testing.T) {
	tw := New()
	b := &box{id: "a"}
	var order []string

	tw.ScaleTo(b, models.Uniform(2), 0, func() {
		order = append(order, "first")
		// chained request made from inside a completion waits for the next tick
		tw.ScaleTo(b, models.Uniform(3), 0, func() { order = append(order, "second") })
	})
	require.Empty(t, order)

	tw.Tick(time.Millisecond)
	assert.Equal(t, []string{"first"}, order)

	tw.Tick(time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, models.Uniform(3), b.scale)
}

func TestTargetsAreIndependent(t *testing.T) {
	tw := New()
	a := &box{id: "a"}
	c := &box{id: "c"}
	tw.MoveTo(a, models.Vec3(1, 1, 1), time.Second, nil)
	tw.MoveTo(c, models.Vec3(2, 2, 2), time.Second, nil)

	tw.Cancel(a)
	tw.Tick(time.Second)
	assert.Equal(t, models.Zero, a.pos)
	assert.Equal(t, models.Vec3(2, 2, 2), c.pos)
}
