package gui

import (
	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/events/bus"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

var _ behaviour.Scorer = (*Score)(nil)

// Score is the running points total.
type Score struct {
	points   int
	onChange *bus.Signal[int]
	logger   log.Log
}

func NewScore(logger log.Log) *Score {
	return &Score{
		onChange: bus.NewSignal[int]("score.changed"),
		logger:   logger.Named("score"),
	}
}

func (s *Score) Points() int { return s.points }

func (s *Score) AddPoints(n int) {
	s.points += n
	s.publish()
}

func (s *Score) Reset() {
	s.points = 0
	s.publish()
}

func (s *Score) publish() {
	if err := s.onChange.Publish(s.points); err != nil {
		s.logger.Error("score listener failed", log.Int("points", s.points), log.Error(err))
	}
}

func (s *Score) Observe(obs bus.Observer) {
	s.onChange.AddObserver(obs)
}

func (s *Score) OnChange(handler func(int) error) bus.Subscription {
	return s.onChange.Subscribe(handler)
}
