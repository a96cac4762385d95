package router

import (
	"context"

	"github.com/webcomp-dev/webcomp/pkg/routepath"
)

// Mode selects where the router reads the current location from.
type Mode string

const (
	// ModeHash routes on the URL fragment after "#".
	ModeHash Mode = "hash"

	// ModeHistory routes on the pathname and uses the history stack.
	ModeHistory Mode = "history"
)

// DefaultRoot is the root a router starts with.
const DefaultRoot = "/"

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeHash || m == ModeHistory
}

// Match is passed to handlers for every matching route on dispatch.
type Match struct {
	// Params holds the named captures of the route pattern.
	Params map[string]string

	// Query holds the parsed query string of the dispatched fragment.
	Query routepath.Query

	// Path is the dispatched fragment without its query string.
	Path string

	ctx context.Context
}

// Context returns the dispatch context. It carries the router.dispatch
// span, so spans started from it nest under the dispatch.
func (m Match) Context() context.Context {
	if m.ctx == nil {
		return context.Background()
	}
	return m.ctx
}

// WithContext returns a copy of m with its context set to ctx.
func (m Match) WithContext(ctx context.Context) Match {
	m.ctx = ctx
	return m
}

// Handler is invoked with the match of a dispatched route.
type Handler func(Match)

// Location is the part of the host URL state the router reads.
type Location struct {
	Href     string
	Pathname string
	Search   string
}

// Scheduler runs a check repeatedly at the host's natural cadence (an
// animation frame in browsers) until the returned cancel func is called.
type Scheduler interface {
	Schedule(tick func()) (cancel func())
}

// Host is the browser-like environment a router navigates in. A router
// without a host runs in server context: it can match and dispatch, but it
// cannot read the location or navigate.
type Host interface {
	Scheduler

	// Location returns the current URL state.
	Location() Location

	// PushState pushes url onto the history stack.
	PushState(url string)

	// ReplaceState replaces the current history entry with url.
	ReplaceState(url string)

	// SetHref assigns the full location href.
	SetHref(href string)
}
