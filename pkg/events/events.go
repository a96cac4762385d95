package events

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNoNames is returned when subscribing without event names.
var ErrNoNames = errors.New("events: at least one event name is required")

// Event is delivered to handlers.
type Event struct {
	Name    string
	Payload any
	Sender  string
}

// Handler receives events.
type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is a named-event publish/subscribe hub. Handlers run synchronously
// on the triggering goroutine, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]subscription
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

var (
	defaultOnce sync.Once
	defaultBus  *Bus
)

// Default returns the document-level bus shared by every element.
func Default() *Bus {
	defaultOnce.Do(func() {
		defaultBus = NewBus()
	})
	return defaultBus
}

// On subscribes handler to every named event and returns a func that
// removes all of those subscriptions.
func (b *Bus) On(handler Handler, names ...string) (off func(), err error) {
	if len(names) == 0 {
		return nil, ErrNoNames
	}
	if handler == nil {
		return nil, errors.New("events: handler must not be nil")
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	for _, name := range names {
		b.subs[name] = append(b.subs[name], subscription{id: id, handler: handler})
	}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for _, name := range names {
				b.subs[name] = slices.DeleteFunc(b.subs[name], func(s subscription) bool { return s.id == id })
				if len(b.subs[name]) == 0 {
					delete(b.subs, name)
				}
			}
		})
	}, nil
}

// Trigger delivers an event to the current subscribers of name.
func (b *Bus) Trigger(name string, payload any, sender string) {
	b.mu.RLock()
	subs := slices.Clone(b.subs[name])
	b.mu.RUnlock()

	ev := Event{Name: name, Payload: payload, Sender: sender}
	for _, s := range subs {
		s.handler(ev)
	}
}

// TriggerAsync resolves the payload with fetch on a new goroutine and
// triggers the event once it succeeds. The returned channel yields the
// fetch error (nil on success) and is then closed. A cancelled context
// suppresses the event.
func (b *Bus) TriggerAsync(ctx context.Context, name, sender string, fetch func(context.Context) (any, error)) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		payload, err := fetch(ctx)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			done <- err
			return
		}
		b.Trigger(name, payload, sender)
		done <- nil
	}()
	return done
}

// Subscribers returns the number of handlers subscribed to name.
func (b *Bus) Subscribers(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[name])
}
