package events

import (
	"context"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, *Event) error

// InMemoryPublisher is a synchronous Publisher used when no queue is
// configured, and by tests. Handlers subscribed to an event type run inline
// on Publish.
type InMemoryPublisher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
	published []*Event
}

// NewInMemoryPublisher creates an empty publisher.
func NewInMemoryPublisher() *InMemoryPublisher {
	return &InMemoryPublisher{
		listeners: make(map[EventType][]EventHandler),
	}
}

// Publish stamps the event and invokes subscribed handlers. Handler errors do
// not abort the remaining handlers.
func (p *InMemoryPublisher) Publish(ctx context.Context, event *Event) error {
	stamp(event)

	p.mu.Lock()
	p.published = append(p.published, event)
	handlers := append([]EventHandler{}, p.listeners[event.Type]...)
	p.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			continue
		}
	}
	return nil
}

// Subscribe registers a handler for the given event type.
func (p *InMemoryPublisher) Subscribe(eventType EventType, handler EventHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners[eventType] = append(p.listeners[eventType], handler)
}

// Published returns the events seen so far, in publish order.
func (p *InMemoryPublisher) Published() []*Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]*Event{}, p.published...)
}
