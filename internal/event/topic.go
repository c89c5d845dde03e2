// internal/event/topic.go
package event

import (
	"errors"
	"sync"
)

// ErrTopicClosed is returned when publishing after Close.
var ErrTopicClosed = errors.New("topic closed")

// Publisher accepts events in the order a match produces them.
type Publisher interface {
	Publish(ev Event) error
}

// Subscriber receives delivered events. Deliver is called from a single goroutine, one
// event at a time, in publish order.
type Subscriber interface {
	Deliver(ev Event)
}

// SubscriberFunc adapts a function to a Subscriber.
type SubscriberFunc func(ev Event)

func (f SubscriberFunc) Deliver(ev Event) { f(ev) }

// Topic fans events out to subscribers through a bounded queue drained by one goroutine.
// Publish blocks while the queue is full.
type Topic struct {
	queue chan Event
	done  chan struct{}

	subsMu sync.RWMutex
	subs   []Subscriber

	// closeMu guards closed and the send side of queue.
	closeMu sync.RWMutex
	closed  bool
}

// NewTopic starts a topic with a queue of the given capacity.
func NewTopic(capacity int) *Topic {
	if capacity < 1 {
		capacity = 1
	}
	t := &Topic{
		queue: make(chan Event, capacity),
		done:  make(chan struct{}),
	}
	go t.run()
	return t
}

// Subscribe adds s. Events published before this call are not replayed.
func (t *Topic) Subscribe(s Subscriber) {
	t.subsMu.Lock()
	defer t.subsMu.Unlock()
	t.subs = append(t.subs, s)
}

// Publish enqueues ev for delivery.
func (t *Topic) Publish(ev Event) error {
	t.closeMu.RLock()
	defer t.closeMu.RUnlock()
	if t.closed {
		return ErrTopicClosed
	}
	t.queue <- ev
	return nil
}

// Close stops accepting events and waits until the queue has been delivered.
func (t *Topic) Close() {
	t.closeMu.Lock()
	if t.closed {
		t.closeMu.Unlock()
		<-t.done
		return
	}
	t.closed = true
	close(t.queue)
	t.closeMu.Unlock()
	<-t.done
}

func (t *Topic) run() {
	defer close(t.done)
	for ev := range t.queue {
		t.subsMu.RLock()
		subs := make([]Subscriber, len(t.subs))
		copy(subs, t.subs)
		t.subsMu.RUnlock()
		for _, s := range subs {
			s.Deliver(ev)
		}
	}
}
