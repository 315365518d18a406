package bus

// Signal is a typed, in-process broadcast channel.
//
// Key characteristics:
// - Ordered fan-out: handlers are invoked in the order they subscribed.
// - Synchronous delivery: Publish calls handler callbacks in the caller goroutine.
// - Snapshot delivery: the handler set is captured when Publish starts, so handlers
//   may subscribe or cancel (themselves or others) while an event is being delivered.
//   A handler cancelled mid-delivery is not invoked for the remainder of that event.
// - Error aggregation: multiple handler errors are joined and returned from Publish.
//
// Handlers should be quick; the scene runs them on the tick thread.

// Handler is a user callback invoked per delivered value.
type Handler[T any] func(value T) error

// Subscription represents a registered handler.
type Subscription interface {
	// ID is a unique identifier for this subscription.
	ID() string
	// Topic returns the name of the signal this subscription belongs to.
	Topic() string
	// IsActive reports whether this subscription is still registered.
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// Observer is notified about deliveries. Implementations should return quickly.
type Observer interface {
	OnPublish(topic string)
	OnDelivered(topic string, handlers int, err error)
}

// Metrics represents a minimal set of counters for one signal.
type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
