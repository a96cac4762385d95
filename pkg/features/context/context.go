package context

import (
	stdctx "context"
	"maps"
	"sync"

	"github.com/webcomp-dev/webcomp/pkg/element"
	"github.com/webcomp-dev/webcomp/pkg/events"
	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// UpdateEvent is triggered on the store's bus after every change. The
// payload is a snapshot of all values.
const UpdateEvent = "wc:contextUpdate"

// Prop is the prop under which a provided component receives its Value.
const Prop = "context"

// Store holds named context values shared across components. Every Set
// replaces the whole value map, so snapshots are never mutated.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
	bus    *events.Bus
}

// NewStore creates a store broadcasting on bus. A nil bus means
// events.Default().
func NewStore(bus *events.Bus) *Store {
	if bus == nil {
		bus = events.Default()
	}
	return &Store{values: map[string]any{}, bus: bus}
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the process-wide store on the default bus.
func Default() *Store {
	defaultOnce.Do(func() {
		defaultStore = NewStore(nil)
	})
	return defaultStore
}

// Bus returns the bus updates are broadcast on.
func (s *Store) Bus() *events.Bus {
	return s.bus
}

// Get returns the named value.
func (s *Store) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Snapshot returns the current values. The map must not be modified.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

// Set stores value under name and broadcasts UpdateEvent.
func (s *Store) Set(name string, value any) {
	s.mu.Lock()
	next := maps.Clone(s.values)
	next[name] = value
	s.values = next
	s.mu.Unlock()

	s.bus.Trigger(UpdateEvent, next, name)
}

// SetAsync resolves the value with fetch in the background and stores it
// once available. The channel yields the fetch error, or nil.
func (s *Store) SetAsync(ctx stdctx.Context, name string, fetch func(stdctx.Context) (any, error)) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		v, err := fetch(ctx)
		if err == nil {
			err = ctx.Err()
		}
		if err == nil {
			s.Set(name, v)
		}
		done <- err
	}()
	return done
}

// Get returns the named value when it has type T.
func Get[T any](s *Store, name string) (T, bool) {
	v, ok := s.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Value is what a provided component receives under Prop.
type Value struct {
	Current any
	Set     func(next any)
}

// InitialContexter is implemented by components that supply their own
// initial context value.
type InitialContexter interface {
	InitialContext() any
}

// Provider renders a component with a named context value and re-renders
// it whenever the store changes. Element lifecycle hooks are forwarded to
// the wrapped component.
type Provider struct {
	element.Hooks

	store *Store
	name  string
	comp  vdom.Component

	mu       sync.Mutex
	snapshot map[string]any
	off      func()
}

var _ vdom.Mountable = (*Provider)(nil)

// With wraps comp in a Provider for the named value and seeds the value:
// an existing non-nil value is kept, otherwise comp's InitialContext is
// used when it has one, otherwise initial. A nil store means Default().
func With(store *Store, name string, initial any, comp vdom.Component) *Provider {
	if store == nil {
		store = Default()
	}

	seed := initial
	if v, ok := store.Get(name); ok && v != nil {
		seed = v
	} else if ic, ok := comp.(InitialContexter); ok {
		seed = ic.InitialContext()
	}
	store.Set(name, seed)

	return &Provider{
		Hooks:    element.Hooks{Target: comp},
		store:    store,
		name:     name,
		comp:     comp,
		snapshot: store.Snapshot(),
	}
}

// Mount subscribes to store updates.
func (p *Provider) Mount(invalidate func()) error {
	off, err := p.store.Bus().On(func(e events.Event) {
		snap, ok := e.Payload.(map[string]any)
		if !ok {
			return
		}
		p.mu.Lock()
		p.snapshot = snap
		p.mu.Unlock()
		if invalidate != nil {
			invalidate()
		}
	}, UpdateEvent)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.snapshot = p.store.Snapshot()
	p.off = off
	p.mu.Unlock()
	return nil
}

// Unmount unsubscribes from store updates.
func (p *Provider) Unmount() {
	p.mu.Lock()
	off := p.off
	p.off = nil
	p.mu.Unlock()
	if off != nil {
		off()
	}
}

// Current returns the value as of the last update seen.
func (p *Provider) Current() any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot[p.name]
}

// Render renders the wrapped component with the Value added to props.
func (p *Provider) Render(props vdom.Props) *vdom.VNode {
	next := props.Clone()
	next[Prop] = Value{
		Current: p.Current(),
		Set:     func(v any) { p.store.Set(p.name, v) },
	}
	return vdom.Comp(p.comp, next, vdom.ChildrenOf(props))
}
