package router

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/webcomp-dev/webcomp/pkg/routepath"
)

// Fragment computes the router's view of the current location.
//
// In history mode it is the decoded pathname without query string, trailing
// slash and (unless root is the default) the root prefix. In hash mode it is
// everything after the first "#", or "" when there is none.
func Fragment(loc Location, mode Mode, root string) string {
	var fragment string
	if mode == ModeHistory {
		fragment = routepath.TrimSlashes(decodeURI(loc.Pathname + loc.Search))
		fragment, _ = routepath.SplitFragment(fragment)
		if root != DefaultRoot {
			fragment = strings.TrimPrefix(fragment, root)
		}
	} else if _, after, ok := strings.Cut(loc.Href, "#"); ok {
		fragment = after
	}
	return routepath.TrimSlashes(fragment)
}

// decodeURI decodes percent escapes except those of reserved characters,
// which stay escaped so "/a%3Fb" is not cut at a query separator. Malformed
// escapes or invalid UTF-8 leave s unchanged.
func decodeURI(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			out = append(out, s[i])
			continue
		}
		if i+2 >= len(s) {
			return s
		}
		b, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			return s
		}
		if strings.IndexByte(reservedURIChars, byte(b)) >= 0 {
			out = append(out, s[i:i+3]...)
		} else {
			out = append(out, byte(b))
		}
		i += 2
	}
	if !utf8.Valid(out) {
		return s
	}
	return string(out)
}

const reservedURIChars = ";/?:@&=+$,#"

// Watcher polls a location source on a Scheduler and reports changes.
type Watcher struct {
	sched   Scheduler
	current func() string

	mu     sync.Mutex
	cancel func()
}

// NewWatcher creates a watcher reading the location from current.
func NewWatcher(sched Scheduler, current func() string) *Watcher {
	return &Watcher{sched: sched, current: current}
}

// Watch starts polling. onChange runs only when the value differs from the
// last one observed. With skipInitial the first value is recorded as the
// baseline without a callback. A previous watch registration is cancelled.
func (w *Watcher) Watch(onChange func(path string), skipInitial bool) {
	w.Stop()

	var (
		last   string
		seeded bool
	)
	if skipInitial {
		last, seeded = w.current(), true
	}

	cancel := w.sched.Schedule(func() {
		path := w.current()
		if seeded && path == last {
			return
		}
		last, seeded = path, true
		onChange(path)
	})

	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()
}

// Stop cancels the watch registration. It is safe to call repeatedly.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Watching reports whether a watch registration is active.
func (w *Watcher) Watching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}
