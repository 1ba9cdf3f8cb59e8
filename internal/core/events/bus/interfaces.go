package bus

import "time"

// EventBus is a synchronous, in-process pub/sub bus used to fan out
// simulation events (collisions, objects entering and leaving a world).
//
// - Handlers subscribe by Event.Type(); the Wildcard type receives everything.
// - Publish calls handlers in the caller goroutine, in subscription order, so
//   a tick replays identically every run.
// - Errors returned by handlers are joined and returned from Publish.
// - All methods are safe for concurrent use.
type EventBus interface {
	Publish(event Event) error
	// PublishWithFilters drops the event without error if any filter rejects it.
	PublishWithFilters(event Event, filters ...EventFilter) error
	PublishBatch(events ...Event) error

	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe is a no-op for nil.
	Unsubscribe(Subscription) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	// GetMetrics is only updated while at least one observer is registered.
	GetMetrics() EventBusMetrics
}

// Wildcard subscribes to every event type.
const Wildcard = "*"

// Event is an immutable message transported by the EventBus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
	// Tick is the simulation step the event was raised in.
	Tick() uint64
}

type (
	EventHandler func(event Event) error
	EventFilter  func(event Event) bool
)

// Subscription is a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// EventBusObserver is notified about deliveries. Observers should return quickly.
type EventBusObserver interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, duration time.Duration)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	DroppedByFilters  uint64
	SubscribersActive uint64
}
