// Package event provides a small synchronous publish/subscribe bus for
// editor notices and status changes. Everything runs on the
// application's single event loop, so delivery is immediate and in
// subscription order with no queues or workers.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Topic identifies a class of events.
type Topic string

// Topics published by the application.
const (
	// TopicNotice carries non-blocking notices, such as an externally
	// triggered board change detected during reconciliation.
	TopicNotice Topic = "board.notice"

	// TopicStatus carries connection and send status transitions.
	TopicStatus Topic = "board.status"

	// TopicAdopted fires when the live grid is replaced by the remote
	// board, either automatically or through a manual sync.
	TopicAdopted Topic = "board.adopted"
)

// Event is a published message.
type Event struct {
	// Topic the event was published under.
	Topic Topic

	// Time the event was published.
	Time time.Time

	// Payload is topic-specific data.
	Payload any
}

// Handler receives published events.
type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription struct {
	id    string
	topic Topic
}

// Bus delivers events synchronously to subscribers. Bus is not safe for
// concurrent use; it lives on the event loop like the rest of the editor
// state.
type Bus struct {
	subs map[Topic][]subscriber
}

type subscriber struct {
	id      string
	handler Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscriber)}
}

// Subscribe registers a handler for a topic and returns its subscription.
func (b *Bus) Subscribe(topic Topic, handler Handler) Subscription {
	sub := subscriber{id: uuid.NewString(), handler: handler}
	b.subs[topic] = append(b.subs[topic], sub)
	return Subscription{id: sub.id, topic: topic}
}

// Unsubscribe removes a previously registered handler.
func (b *Bus) Unsubscribe(sub Subscription) {
	list := b.subs[sub.topic]
	for i, s := range list {
		if s.id == sub.id {
			b.subs[sub.topic] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Publish delivers the payload to every subscriber of the topic, in
// subscription order.
func (b *Bus) Publish(topic Topic, payload any) {
	ev := Event{Topic: topic, Time: time.Now(), Payload: payload}
	for _, s := range b.subs[topic] {
		s.handler(ev)
	}
}
