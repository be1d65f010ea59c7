package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFor(t *testing.T) {
	assert.Equal(t, EventType("lead.created"), TypeFor("lead", OpCreated))
	assert.Equal(t, EventType("case_comment.deleted"), TypeFor("case_comment", OpDeleted))
}

func TestBroker_Broadcast(t *testing.T) {
	b := NewBroker()
	var observed []EventType
	b.OnPublish(func(e *Event) { observed = append(observed, e.Type) })
	b.Start()
	defer b.Stop()

	first := b.Subscribe()
	second := b.Subscribe()
	assert.Equal(t, 2, b.SubscriberCount())

	b.Publish(&Event{Type: TypeFor("lead", OpCreated), Collection: "crm_leads", EntityID: "1"})

	for _, sub := range []Subscriber{first, second} {
		select {
		case e := <-sub:
			assert.Equal(t, EventType("lead.created"), e.Type)
			assert.False(t, e.Timestamp.IsZero())
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
	assert.Equal(t, []EventType{"lead.created"}, observed)
	assert.Equal(t, int64(1), b.PublishedCount())
}

func TestBroker_Unsubscribe(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	b.Unsubscribe(sub)
	b.Unsubscribe(sub)
	assert.Zero(t, b.SubscriberCount())

	_, ok := <-sub
	assert.False(t, ok, "channel closed on unsubscribe")
}

func TestBroker_PublishAfterStop(t *testing.T) {
	b := NewBroker()
	b.Start()
	b.Stop()
	b.Stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			b.Publish(&Event{Type: EventSeeded})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "publish blocked on a stopped broker")
	}
}

func TestBroker_Filters(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	leads := b.Subscribe(ForCollection("crm_leads"))
	created := b.Subscribe(ForCollection("crm_leads", "crm_cases"), OfType(TypeFor("case", OpCreated)))

	b.Publish(&Event{Type: TypeFor("account", OpCreated), Collection: "crm_accounts"})
	b.Publish(&Event{Type: TypeFor("lead", OpUpdated), Collection: "crm_leads", EntityID: "7"})
	b.Publish(&Event{Type: TypeFor("case", OpCreated), Collection: "crm_cases", EntityID: "9"})

	select {
	case e := <-leads:
		assert.Equal(t, "7", e.EntityID)
	case <-time.After(time.Second):
		t.Fatal("lead event not delivered")
	}
	select {
	case e := <-created:
		assert.Equal(t, "9", e.EntityID)
	case <-time.After(time.Second):
		t.Fatal("case event not delivered")
	}

	assert.Never(t, func() bool { return len(leads) > 0 || len(created) > 0 }, 50*time.Millisecond, 10*time.Millisecond)
}

func TestBroker_DropsOnFullBuffer(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	for i := 0; i < subscriberBuffer+10; i++ {
		b.Publish(&Event{Type: EventToastShown})
	}

	assert.Eventually(t, func() bool {
		return len(sub) == subscriberBuffer && b.DroppedCount() == 10
	}, time.Second, 5*time.Millisecond)
}

func TestBroker_StartTwice(t *testing.T) {
	b := NewBroker()
	b.Start()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	b.Publish(&Event{Type: EventReset})

	select {
	case e := <-sub:
		assert.Equal(t, EventReset, e.Type)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	assert.Never(t, func() bool { return len(sub) > 0 }, 50*time.Millisecond, 10*time.Millisecond, "delivered once")
}
