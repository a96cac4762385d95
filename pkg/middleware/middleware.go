package middleware

import (
	"fmt"
	"log/slog"

	"github.com/webcomp-dev/webcomp/pkg/router"
)

// Middleware wraps the handler registered for pattern.
type Middleware func(pattern string, next router.Handler) router.Handler

// Chain wraps h with mws. The first middleware is the outermost.
func Chain(pattern string, h router.Handler, mws ...Middleware) router.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](pattern, h)
		}
	}
	return h
}

// PanicError is passed to the Recover callback for a panicking handler.
type PanicError struct {
	Pattern string
	Path    string
	Value   any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("route %s: handler panicked on %q: %v", e.Pattern, e.Path, e.Value)
}

// Recover stops a panicking handler from aborting the dispatch pass. The
// panic is logged and passed to onPanic when it is set.
func Recover(logger *slog.Logger, onPanic func(*PanicError)) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(pattern string, next router.Handler) router.Handler {
		return func(m router.Match) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				err := &PanicError{Pattern: pattern, Path: m.Path, Value: v}
				logger.Error("route handler panicked",
					"pattern", pattern,
					"path", m.Path,
					"panic", v)
				if onPanic != nil {
					onPanic(err)
				}
			}()
			next(m)
		}
	}
}
