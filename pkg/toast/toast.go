// Package toast is a queue of short-lived notifications. Messages with a
// positive duration remove themselves when it elapses.
package toast

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/collection"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/events"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/metrics"
)

// DefaultDuration applies when a helper is called without a duration
const DefaultDuration = 5 * time.Second

// Kind is the severity of a message
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Message is one notification. A zero Duration never expires. In JSON the
// duration is whole milliseconds.
type Message struct {
	ID       string        `json:"id"`
	Kind     Kind          `json:"type"`
	Text     string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

type messageJSON struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"type"`
	Text     string `json:"message"`
	Duration int64  `json:"duration"`
}

// MarshalJSON writes Duration in milliseconds
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{ID: m.ID, Kind: m.Kind, Text: m.Text, Duration: m.Duration.Milliseconds()})
}

// UnmarshalJSON reads Duration in milliseconds
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw messageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Message{ID: raw.ID, Kind: raw.Kind, Text: raw.Text, Duration: time.Duration(raw.Duration) * time.Millisecond}
	return nil
}

// Option configures a Queue
type Option func(*Queue)

// WithClock replaces time.Now for id minting
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// WithBroker publishes every shown message on b
func WithBroker(b *events.Broker) Option {
	return func(q *Queue) { q.broker = b }
}

// Queue holds the visible messages
type Queue struct {
	now    func() time.Time
	broker *events.Broker

	mu       sync.Mutex
	messages []Message
	timers   map[string]*time.Timer
	subs     map[int]func([]Message)
	nextSub  int
}

// New creates an empty queue
func New(opts ...Option) *Queue {
	q := &Queue{
		now:    time.Now,
		timers: make(map[string]*time.Timer),
		subs:   make(map[int]func([]Message)),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Show appends a message and schedules its removal after d when d > 0
func (q *Queue) Show(kind Kind, text string, d time.Duration) Message {
	msg := Message{
		ID:       fmt.Sprintf("toast_%d_%s", q.now().UnixMilli(), collection.RandomBase36(9)),
		Kind:     kind,
		Text:     text,
		Duration: d,
	}

	q.mu.Lock()
	q.messages = append(q.messages, msg)
	if d > 0 {
		q.timers[msg.ID] = time.AfterFunc(d, func() { q.Dismiss(msg.ID) })
	}
	q.mu.Unlock()

	if q.broker != nil {
		q.broker.Publish(&events.Event{
			Type:     events.EventToastShown,
			Message:  text,
			Metadata: map[string]string{"kind": string(kind), "toast_id": msg.ID},
		})
	}
	q.changed()
	return msg
}

func duration(d []time.Duration) time.Duration {
	if len(d) > 0 {
		return d[0]
	}
	return DefaultDuration
}

// Success shows a success message, by default for DefaultDuration
func (q *Queue) Success(text string, d ...time.Duration) Message {
	return q.Show(KindSuccess, text, duration(d))
}

// Error shows an error message, by default for DefaultDuration
func (q *Queue) Error(text string, d ...time.Duration) Message {
	return q.Show(KindError, text, duration(d))
}

// Warning shows a warning, by default for DefaultDuration
func (q *Queue) Warning(text string, d ...time.Duration) Message {
	return q.Show(KindWarning, text, duration(d))
}

// Info shows an informational message, by default for DefaultDuration
func (q *Queue) Info(text string, d ...time.Duration) Message {
	return q.Show(KindInfo, text, duration(d))
}

// Dismiss removes the message with id. Unknown ids are ignored.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	idx := slices.IndexFunc(q.messages, func(m Message) bool { return m.ID == id })
	if idx < 0 {
		q.mu.Unlock()
		return
	}
	q.messages = slices.Delete(q.messages, idx, idx+1)
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	q.mu.Unlock()

	q.changed()
}

// Clear removes every message and cancels pending expiries
func (q *Queue) Clear() {
	q.mu.Lock()
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.messages = nil
	q.mu.Unlock()

	q.changed()
}

// Messages returns a copy of the visible messages in display order
func (q *Queue) Messages() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.messages)
}

// Subscribe registers fn for every change to the list
func (q *Queue) Subscribe(fn func([]Message)) (unsubscribe func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := q.nextSub
	q.nextSub++
	q.subs[id] = fn
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.subs, id)
	}
}

func (q *Queue) changed() {
	q.mu.Lock()
	msgs := slices.Clone(q.messages)
	subs := make([]func([]Message), 0, len(q.subs))
	for _, fn := range q.subs {
		subs = append(subs, fn)
	}
	q.mu.Unlock()

	metrics.ToastsActive.Set(float64(len(msgs)))
	for _, fn := range subs {
		fn(msgs)
	}
}
