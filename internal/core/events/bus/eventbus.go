package bus

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

type subscription[T any] struct {
	id      string
	topic   string
	handler Handler[T]
	active  bool
	cancel  func()
}

func (s *subscription[T]) ID() string     { return s.id }
func (s *subscription[T]) Topic() string  { return s.topic }
func (s *subscription[T]) IsActive() bool { return s.active }
func (s *subscription[T]) Cancel() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// Signal fans a value out to its subscribers. The zero value is not usable, see NewSignal.
type Signal[T any] struct {
	mu        sync.Mutex
	topic     string
	subs      []*subscription[T]
	metrics   Metrics
	observers []Observer
}

// NewSignal creates a signal. The topic is only used for diagnostics.
func NewSignal[T any](topic string) *Signal[T] {
	return &Signal[T]{topic: topic}
}

func (s *Signal[T]) Topic() string { return s.topic }

// Subscribe registers handler and returns a handle that can be cancelled later.
func (s *Signal[T]) Subscribe(handler Handler[T]) Subscription {
	sub := &subscription[T]{
		id:      uuid.NewString(),
		topic:   s.topic,
		handler: handler,
		active:  true,
	}
	sub.cancel = func() { s.remove(sub) }

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	return sub
}

// Unsubscribe cancels the given Subscription. It is safe to call with nil.
func (s *Signal[T]) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return nil
	}
	return sub.Cancel()
}

// Publish delivers value synchronously to every active subscriber.
func (s *Signal[T]) Publish(value T) error {
	s.mu.Lock()
	subs := make([]*subscription[T], len(s.subs))
	copy(subs, s.subs)
	observers := s.observers
	s.mu.Unlock()

	for _, obs := range observers {
		obs.OnPublish(s.topic)
	}

	var all error
	delivered := 0
	for _, sub := range subs {
		if !s.isActive(sub) {
			continue
		}
		delivered++
		if err := sub.handler(value); err != nil {
			all = errors.Join(all, err)
		}
	}

	s.mu.Lock()
	s.metrics.Published++
	s.metrics.DeliveredHandlers += uint64(delivered)
	if all != nil {
		s.metrics.Errors++
	}
	s.mu.Unlock()

	for _, obs := range observers {
		obs.OnDelivered(s.topic, delivered, all)
	}
	return all
}

// Len returns the number of active subscriptions.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Clear cancels every subscription.
func (s *Signal[T]) Clear() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	for _, sub := range subs {
		sub.active = false
	}
	s.mu.Unlock()
}

func (s *Signal[T]) AddObserver(obs Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, obs)
	s.mu.Unlock()
}

func (s *Signal[T]) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.metrics
	m.SubscribersActive = uint64(len(s.subs))
	return m
}

func (s *Signal[T]) isActive(sub *subscription[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sub.active
}

func (s *Signal[T]) remove(sub *subscription[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !sub.active {
		return
	}
	sub.active = false
	for i, cur := range s.subs {
		if cur == sub {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			break
		}
	}
}
