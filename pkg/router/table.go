package router

import (
	"sync"

	"github.com/google/uuid"
	"github.com/webcomp-dev/webcomp/pkg/routepath"
)

// Route is a registered route handler.
type Route struct {
	ID      string
	Pattern *routepath.Pattern
	Handler Handler
	Persist bool
}

// Table is the ordered set of registered routes.
// It is safe for concurrent use.
type Table struct {
	mu     sync.Mutex
	routes []*Route
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{}
}

// Add stores r and returns its ID, generating one when r.ID is empty.
func (t *Table) Add(r *Route) string {
	if r.ID == "" {
		r.ID = newRouteID()
	}
	t.mu.Lock()
	t.routes = append(t.routes, r)
	t.mu.Unlock()
	return r.ID
}

// Remove deletes the route with the given ID. Unknown IDs are ignored.
func (t *Table) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, r := range t.routes {
		if r.ID == id {
			t.routes = append(t.routes[:i:i], t.routes[i+1:]...)
			return
		}
	}
}

// Clear removes every route when force is set, and only routes without
// Persist otherwise.
func (t *Table) Clear(force bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if force {
		t.routes = nil
		return
	}
	kept := make([]*Route, 0, len(t.routes))
	for _, r := range t.routes {
		if r.Persist {
			kept = append(kept, r)
		}
	}
	t.routes = kept
}

// Snapshot returns the routes in insertion order. The slice is a copy, so
// the table may be modified while the snapshot is iterated.
func (t *Table) Snapshot() []*Route {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.routes)
}

// newRouteID returns a time-ordered UUID.
func newRouteID() string {
	return uuid.Must(uuid.NewV7()).String()
}
