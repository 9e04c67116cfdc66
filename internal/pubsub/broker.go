// Package pubsub is the in-process event fan-out. Topics are a typed
// event name plus an optional entity scope, so subscribers choose between
// the broad stream and a per-entity one. Delivery is at-most-once per
// active subscriber: publish never blocks, a full subscriber queue drops
// the event, and there is no replay for late subscribers.
package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Event names the kind of domain event flowing through the broker.
type Event string

const (
	EventRecognitionCreated Event = "RECOGNITION_CREATED"
	EventRecognitionUpdated Event = "RECOGNITION_UPDATED"
	EventReactionAdded      Event = "REACTION_ADDED"
	EventCommentAdded       Event = "COMMENT_ADDED"
)

func (e Event) String() string { return string(e) }

// Topic is an Event plus an optional entity scope. The zero Key means the
// unscoped, broad topic.
type Topic struct {
	Event Event
	Key   string
}

// Unscoped returns the broad topic for an event.
func Unscoped(e Event) Topic {
	return Topic{Event: e}
}

// Scoped returns the topic for an event narrowed to one entity.
func Scoped(e Event, id uuid.UUID) Topic {
	return Topic{Event: e, Key: id.String()}
}

func (t Topic) String() string {
	if t.Key == "" {
		return string(t.Event)
	}
	return string(t.Event) + ":" + t.Key
}

// DefaultBuffer is the per-subscriber queue size when none is configured.
const DefaultBuffer = 16

// Broker fans events out to topic subscribers. Safe for concurrent use.
type Broker struct {
	mu     sync.RWMutex
	subs   map[Topic]map[*Subscription]struct{}
	buffer int
	closed bool
	log    *slog.Logger
}

// NewBroker creates a Broker whose subscribers each get a queue of the
// given size. Sizes < 1 fall back to DefaultBuffer.
func NewBroker(log *slog.Logger, buffer int) *Broker {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	return &Broker{
		subs:   make(map[Topic]map[*Subscription]struct{}),
		buffer: buffer,
		log:    log.With("component", "pubsub"),
	}
}

// Subscription is one subscriber's handle on a topic. Events arrive on C
// until the subscription is closed, its context is cancelled, or the
// broker shuts down; C is closed afterwards.
type Subscription struct {
	topic  Topic
	ch     chan any
	broker *Broker
	once   sync.Once
}

// C returns the subscriber's event channel.
func (s *Subscription) C() <-chan any { return s.ch }

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic { return s.topic }

// Close detaches the subscription and closes its channel. Idempotent.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s)
		close(s.ch)
	})
}

// Subscribe registers a subscriber on a topic. The subscription closes
// itself when ctx is cancelled. Subscribing on a closed broker returns an
// already-closed subscription.
func (b *Broker) Subscribe(ctx context.Context, topic Topic) *Subscription {
	sub := &Subscription{
		topic:  topic,
		ch:     make(chan any, b.buffer),
		broker: b,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.once.Do(func() { close(sub.ch) })
		return sub
	}
	set, ok := b.subs[topic]
	if !ok {
		set = make(map[*Subscription]struct{})
		b.subs[topic] = set
	}
	set[sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub
}

// Publish delivers the payload to every active subscriber of the topic.
// Fire-and-forget: a subscriber whose queue is full loses this event
// rather than stalling the publisher.
func (b *Broker) Publish(topic Topic, payload any) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for sub := range b.subs[topic] {
		select {
		case sub.ch <- payload:
		default:
			b.log.Warn("dropping event for slow subscriber",
				slog.String("topic", topic.String()),
			)
		}
	}
}

// Close shuts the broker down and closes every subscription.
func (b *Broker) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	var all []*Subscription
	for _, set := range b.subs {
		for sub := range set {
			all = append(all, sub)
		}
	}
	b.subs = make(map[Topic]map[*Subscription]struct{})
	b.mu.Unlock()

	for _, sub := range all {
		sub.once.Do(func() { close(sub.ch) })
	}
}

func (b *Broker) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if set, ok := b.subs[sub.topic]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(b.subs, sub.topic)
		}
	}
}
