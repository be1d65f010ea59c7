/*
Package events provides an in-memory event broker for data layer changes.

Every collection cache publishes an event after it reloads from storage, so
observers (the monitor command, metrics, tests) can follow creates, updates
and deletes without polling. Seeding, resets, logins, logouts and toasts
publish events of their own.

# Architecture

	┌──────────────────── EVENT BROKER ─────────────────────────┐
	│                                                            │
	│  Cache.notify / seed / auth / toast                        │
	│        │                                                   │
	│        ▼                                                   │
	│  Publish ──► OnPublish hook (synchronous, e.g. metrics)    │
	│        │                                                   │
	│        ▼                                                   │
	│  Event channel (buffer: 100)                               │
	│        │                                                   │
	│        ▼                                                   │
	│  Delivery loop ──► filters ──► Subscriber (buffer: 50 each)│
	│                     full subscriber: event dropped         │
	└────────────────────────────────────────────────────────────┘

# Event Types

Collection events are built with TypeFor from the entity kind and the
operation:

	lead.created, lead.updated, lead.deleted, lead.loaded
	case_comment.created, ...
	report.deleted, ...

Session and data events are fixed:

	data.seeded      seed.Bootstrap applied a fresh dataset
	data.reset       seed.Reset emptied every collection
	session.login    a mock user signed in
	session.logout   the session was cleared
	toast.shown      a toast message was queued

# Usage

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)

	go func() {
		for e := range sub {
			fmt.Println(e.Type, e.Collection, e.EntityID)
		}
	}()

	// only case changes
	cases := broker.Subscribe(events.ForCollection("crm_cases"))
	defer broker.Unsubscribe(cases)

	broker.Publish(&events.Event{
		Type:       events.TypeFor("lead", events.OpCreated),
		Collection: "crm_leads",
		EntityID:   "lxk2m9a1b2c3d4e",
	})

# Delivery

Publish stamps a zero Timestamp and hands the event to the delivery loop.
It blocks while the event channel is full, so a broker that was never
started stalls publishers after 100 events; after Stop it returns
immediately. Slow subscribers lose events rather than stall publishers;
DroppedCount tells how many. Unsubscribe closes the subscriber channel.
Start is idempotent.

The registry owns its broker unless one is injected with
registry.WithBroker. Either way it starts the broker, and an owned broker
counts every event in crm_events_published_total{type}.
*/
package events
