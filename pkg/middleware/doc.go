// Package middleware provides route handler middleware.
//
// This package includes:
//   - OpenTelemetry tracing of handler calls
//   - Prometheus metrics of handler calls
//   - Panic recovery
//
// Middleware wraps a router.Handler for one pattern:
//
//	h = middleware.Chain("/users/:id", h,
//	    middleware.Recover(logger, nil),
//	    middleware.OpenTelemetry(),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	)
//	r.On("/users/:id", h, false)
//
// Put Recover first: the tracing and metrics middleware record a panic and
// re-panic, so only an outer Recover keeps the remaining handlers of the
// dispatch pass running.
package middleware
