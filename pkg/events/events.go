package events

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// EventType identifies what happened, e.g. "lead.created"
type EventType string

// Operation is the change applied to a collection
type Operation string

const (
	OpCreated Operation = "created"
	OpUpdated Operation = "updated"
	OpDeleted Operation = "deleted"
	OpLoaded  Operation = "loaded"
)

const (
	EventSeeded     EventType = "data.seeded"
	EventReset      EventType = "data.reset"
	EventLoggedIn   EventType = "session.login"
	EventLoggedOut  EventType = "session.logout"
	EventToastShown EventType = "toast.shown"
)

// Queue sizes
const (
	publishBuffer    = 100
	subscriberBuffer = 50
)

// TypeFor builds the event type for an operation on an entity kind,
// e.g. TypeFor("lead", OpCreated) == "lead.created"
func TypeFor(entity string, op Operation) EventType {
	return EventType(entity + "." + string(op))
}

// Event is one data layer change or session notification
type Event struct {
	ID         string
	Type       EventType
	Timestamp  time.Time
	Collection string
	EntityID   string
	Message    string
	Metadata   map[string]string
}

// Subscriber receives events. It is closed by Unsubscribe.
type Subscriber chan *Event

// Filter selects the events a subscriber receives
type Filter func(*Event) bool

// ForCollection passes events about the given collection keys
func ForCollection(keys ...string) Filter {
	return func(e *Event) bool { return slices.Contains(keys, e.Collection) }
}

// OfType passes events of the given types
func OfType(types ...EventType) Filter {
	return func(e *Event) bool { return slices.Contains(types, e.Type) }
}

// Broker fans published events out to subscribers. Delivery is best
// effort: a subscriber whose buffer is full misses the event.
type Broker struct {
	mu      sync.RWMutex
	subs    map[Subscriber][]Filter
	queue   chan *Event
	done    chan struct{}
	started sync.Once
	stopped sync.Once

	published atomic.Int64
	dropped   atomic.Int64
	observe   func(*Event)
}

// NewBroker creates a broker. Call Start before publishing.
func NewBroker() *Broker {
	return &Broker{
		subs:  make(map[Subscriber][]Filter),
		queue: make(chan *Event, publishBuffer),
		done:  make(chan struct{}),
	}
}

// OnPublish registers a hook run synchronously on every Publish.
// Set it before Start.
func (b *Broker) OnPublish(fn func(*Event)) {
	b.observe = fn
}

// Start runs the distribution loop in the background. Calls after the
// first are no-ops.
func (b *Broker) Start() {
	b.started.Do(func() {
		go func() {
			for {
				select {
				case e := <-b.queue:
					b.deliver(e)
				case <-b.done:
					return
				}
			}
		}()
	})
}

// Stop ends distribution. Later publishes return immediately.
func (b *Broker) Stop() {
	b.stopped.Do(func() { close(b.done) })
}

// Subscribe registers a subscriber. With filters, only events passing
// every filter are delivered.
func (b *Broker) Subscribe(filters ...Filter) Subscriber {
	sub := make(Subscriber, subscriberBuffer)
	b.mu.Lock()
	b.subs[sub] = filters
	b.mu.Unlock()
	return sub
}

// Unsubscribe removes sub and closes it. Unknown subscribers are ignored.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub)
	}
}

// Publish stamps and queues an event
func (b *Broker) Publish(e *Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	b.published.Add(1)
	if b.observe != nil {
		b.observe(e)
	}

	select {
	case b.queue <- e:
	case <-b.done:
	}
}

func (b *Broker) deliver(e *Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub, filters := range b.subs {
		if !matches(e, filters) {
			continue
		}
		select {
		case sub <- e:
		default:
			b.dropped.Add(1)
		}
	}
}

func matches(e *Event, filters []Filter) bool {
	for _, f := range filters {
		if !f(e) {
			return false
		}
	}
	return true
}

// SubscriberCount returns the number of active subscribers
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// PublishedCount returns how many events have been published
func (b *Broker) PublishedCount() int64 {
	return b.published.Load()
}

// DroppedCount returns how many deliveries were skipped on full buffers
func (b *Broker) DroppedCount() int64 {
	return b.dropped.Load()
}
