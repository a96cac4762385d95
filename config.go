package webcomp

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/webcomp-dev/webcomp/pkg/element"
	"github.com/webcomp-dev/webcomp/pkg/events"
	"github.com/webcomp-dev/webcomp/pkg/middleware"
	"github.com/webcomp-dev/webcomp/pkg/router"
	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// Config is the application configuration.
type Config struct {
	// Router configures the client router.
	Router RouterConfig

	// Element holds the options every registered element renders with.
	Element element.Options

	// Registry receives the element definitions.
	// Default: a fresh element.MemoryRegistry.
	Registry element.Registry

	// Renderer patches component trees into host containers. Elements can
	// only be created when it is set.
	Renderer vdom.Renderer

	// Bus carries component events and context updates.
	// Default: a fresh events.Bus.
	Bus *events.Bus

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Metrics receives the router collectors. Nil disables metrics.
	Metrics prometheus.Registerer

	// Tracer traces router dispatches and handler calls.
	// Default: the tracer of the global OpenTelemetry provider.
	Tracer trace.Tracer

	// Middleware wraps handlers registered through App.On, inside the
	// recovery, tracing and metrics middleware.
	Middleware []middleware.Middleware
}

// RouterConfig configures the client router.
type RouterConfig struct {
	// Mode is router.ModeHash or router.ModeHistory. Default: hash.
	Mode router.Mode

	// Root is the path prefix stripped in history mode. Default: "/".
	Root string

	// SkipInitial suppresses the dispatch of the location found at
	// startup.
	SkipInitial bool

	// Host is the browser environment. Nil runs the router in server
	// context, where it can match and dispatch but not navigate.
	Host router.Host
}

// DefaultRouterConfig returns the router configuration used when none is
// given.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		Mode: router.ModeHash,
		Root: router.DefaultRoot,
	}
}

// routerOptions converts the configuration into router options.
func (c Config) routerOptions(logger *slog.Logger) []router.Option {
	opts := []router.Option{
		router.WithMode(c.Router.Mode),
		router.WithRoot(c.Router.Root),
		router.WithSkipInitial(c.Router.SkipInitial),
		router.WithLogger(logger),
	}
	if c.Router.Host != nil {
		opts = append(opts, router.WithHost(c.Router.Host))
	}
	if c.Metrics != nil {
		opts = append(opts, router.WithMetrics(router.NewMetrics(c.Metrics, router.DefaultNamespace)))
	}
	if c.Tracer != nil {
		opts = append(opts, router.WithTracer(c.Tracer))
	}
	return opts
}

// handlerMiddleware returns the middleware App.On wraps handlers with.
func (c Config) handlerMiddleware(logger *slog.Logger) []middleware.Middleware {
	mws := []middleware.Middleware{middleware.Recover(logger, nil)}
	if c.Tracer != nil {
		mws = append(mws, middleware.OpenTelemetry(middleware.WithTracer(c.Tracer)))
	} else {
		mws = append(mws, middleware.OpenTelemetry())
	}
	if c.Metrics != nil {
		mws = append(mws, middleware.Prometheus(middleware.WithRegistry(c.Metrics)))
	}
	return append(mws, c.Middleware...)
}
