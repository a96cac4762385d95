package vtest

import (
	"net/url"
	"sync"

	"github.com/webcomp-dev/webcomp/pkg/router"
)

// Host is a router.Host for tests. Frames only run when Tick is called.
type Host struct {
	mu      sync.Mutex
	loc     *url.URL
	history []string
	ticks   map[int]func()
	nextID  int
}

var _ router.Host = (*Host)(nil)

// NewHost creates a host at href, which must be an absolute URL.
//
// Example:
//
//	host := vtest.NewHost("https://example.com/app/#/home")
func NewHost(href string) *Host {
	u, err := url.Parse(href)
	if err != nil {
		panic(err)
	}
	return &Host{
		loc:     u,
		history: []string{u.String()},
		ticks:   make(map[int]func()),
	}
}

// Location implements router.Host.
func (h *Host) Location() router.Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return locationOf(h.loc)
}

func locationOf(u *url.URL) router.Location {
	loc := router.Location{
		Href:     u.String(),
		Pathname: u.EscapedPath(),
	}
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	if u.RawQuery != "" {
		loc.Search = "?" + u.RawQuery
	}
	return loc
}

// PushState implements router.Host.
func (h *Host) PushState(ref string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loc = h.resolve(ref)
	h.history = append(h.history, h.loc.String())
}

// ReplaceState implements router.Host.
func (h *Host) ReplaceState(ref string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loc = h.resolve(ref)
	h.history[len(h.history)-1] = h.loc.String()
}

// SetHref implements router.Host. Like a browser, changing only the hash
// adds a history entry.
func (h *Host) SetHref(href string) {
	h.PushState(href)
}

// Navigate moves the location without a history entry, like a user typing
// into the address bar.
func (h *Host) Navigate(ref string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loc = h.resolve(ref)
}

// resolve must be called with h.mu held.
func (h *Host) resolve(ref string) *url.URL {
	u, err := url.Parse(ref)
	if err != nil {
		panic(err)
	}
	return h.loc.ResolveReference(u)
}

// History returns the visited URLs, oldest first.
func (h *Host) History() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.history))
	copy(out, h.history)
	return out
}

// Schedule implements router.Scheduler.
func (h *Host) Schedule(tick func()) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.ticks[id] = tick
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.ticks, id)
		h.mu.Unlock()
	}
}

// Tick runs one frame: every scheduled tick once, in scheduling order.
func (h *Host) Tick() {
	h.mu.Lock()
	ids := sortedKeys(h.ticks)
	h.mu.Unlock()

	for _, id := range ids {
		h.mu.Lock()
		tick, ok := h.ticks[id]
		h.mu.Unlock()
		if ok {
			tick()
		}
	}
}

// Scheduled returns the number of active tick registrations.
func (h *Host) Scheduled() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.ticks)
}
