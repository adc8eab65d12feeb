// Package events contains an in-process event bus.
//
// The bus is a bounded queue consumed by a single background worker, so
// publishing is decoupled from handling structurally: a publisher never waits
// for handlers and never observes their failures.
package events

import (
	"context"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("package", "events")

// LikeCreated is emitted exactly once per newly inserted like, never for a
// duplicate attempt.
const LikeCreated = "like.created"

// LikeCreatedEvent ...
type LikeCreatedEvent struct {
	PostID       string
	UserID       string
	PostAuthorID string
}

// Handler processes a published event.
type Handler func(ctx context.Context, payload interface{})

type message struct {
	name    string
	payload interface{}
}

// Bus ...
type Bus struct {
	handlers map[string][]Handler
	queue    chan message
}

// New creates new instance of Bus with the given queue capacity.
func New(queueSize int) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		queue:    make(chan message, queueSize),
	}
}

// Subscribe registers a handler for an event name. The registry is immutable
// once Run is started; Subscribe must only be called during wiring.
func (b *Bus) Subscribe(name string, h Handler) {
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish schedules delivery of an event to all registered handlers. It never
// blocks: if the queue is full the event is dropped with a warning. There is no
// redelivery, events queued at process termination are lost.
func (b *Bus) Publish(name string, payload interface{}) {
	select {
	case b.queue <- message{name: name, payload: payload}:
	default:
		log.WithField("event", name).Warn("queue is full, event dropped")
	}
}

// Run consumes the queue until ctx is cancelled. Events of the same name are
// handled in publish order.
func (b *Bus) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-b.queue:
			b.dispatch(ctx, m)
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, m message) {
	for _, h := range b.handlers[m.name] {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithField("event", m.name).Errorf("handler panicked: %v", r)
				}
			}()

			h(ctx, m.payload)
		}()
	}
}
