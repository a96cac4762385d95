package webcomp

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/webcomp-dev/webcomp/pkg/element"
	"github.com/webcomp-dev/webcomp/pkg/events"
	wcctx "github.com/webcomp-dev/webcomp/pkg/features/context"
	"github.com/webcomp-dev/webcomp/pkg/middleware"
	"github.com/webcomp-dev/webcomp/pkg/router"
	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

var (
	// ErrUnknownElement is returned when creating an element for a tag
	// that was never registered.
	ErrUnknownElement = errors.New("webcomp: custom element is not defined")

	// ErrNoRenderer is returned when creating an element without a
	// configured renderer.
	ErrNoRenderer = errors.New("webcomp: no renderer configured")

	// ErrClosed is returned by operations on a closed App.
	ErrClosed = errors.New("webcomp: app is closed")
)

// App is the main webcomp application entry point.
// It wires the router, the element registry, the event bus and the
// context store that components share.
//
// Create an App with webcomp.New():
//
//	app, err := webcomp.New(webcomp.Config{
//	    Router:   webcomp.RouterConfig{Mode: router.ModeHistory, Host: router.DefaultHost()},
//	    Renderer: renderer,
//	})
//
//	app.Register(&Counter{}, "")
//	el, err := app.Connect("counter", host)
type App struct {
	config   Config
	logger   *slog.Logger
	router   *router.Router
	registry element.Registry
	bus      *events.Bus
	store    *wcctx.Store
	handlers []middleware.Middleware

	mu       sync.Mutex
	elements map[*element.Element]struct{}
	closed   bool
}

// New creates an application with the given configuration.
func New(cfg Config) (*App, error) {
	def := DefaultRouterConfig()
	if cfg.Router.Mode == "" {
		cfg.Router.Mode = def.Mode
	}
	if cfg.Router.Root == "" {
		cfg.Router.Root = def.Root
	}
	if err := cfg.Element.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = element.NewMemoryRegistry()
	}
	bus := cfg.Bus
	if bus == nil {
		bus = events.NewBus()
	}

	r, err := router.New(cfg.routerOptions(logger)...)
	if err != nil {
		return nil, err
	}

	return &App{
		config:   cfg,
		logger:   logger,
		router:   r,
		registry: registry,
		bus:      bus,
		store:    wcctx.NewStore(bus),
		handlers: cfg.handlerMiddleware(logger),
		elements: make(map[*element.Element]struct{}),
	}, nil
}

// Router returns the application router.
func (a *App) Router() *router.Router { return a.router }

// Registry returns the element registry.
func (a *App) Registry() element.Registry { return a.registry }

// Bus returns the event bus.
func (a *App) Bus() *events.Bus { return a.bus }

// Store returns the context store.
func (a *App) Store() *wcctx.Store { return a.store }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Register defines comp as a custom element with the application element
// options. An empty tag is derived from the component type name.
func (a *App) Register(comp vdom.Component, tag string) (*element.Definition, error) {
	if a.isClosed() {
		return nil, ErrClosed
	}
	def, err := element.Register(a.registry, comp, tag, a.config.Element)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("element registered", "tag", def.Tag)
	return def, nil
}

// On registers handler for pattern on the application router. The handler
// is wrapped in panic recovery, tracing and, with Config.Metrics, metrics.
func (a *App) On(pattern string, handler router.Handler, persist bool) (string, error) {
	if handler == nil {
		return "", router.ErrNilHandler
	}
	return a.router.On(pattern, middleware.Chain(pattern, handler, a.handlers...), persist)
}

// Routerize wraps comp so it receives the application router as a prop.
func (a *App) Routerize(comp vdom.Component) *router.Routed {
	return router.Routerize(a.router, comp)
}

// Provide wraps comp in a provider of the named context value.
func (a *App) Provide(name string, initial any, comp vdom.Component) *wcctx.Provider {
	return wcctx.With(a.store, name, initial, comp)
}

// Create builds an element of a registered tag for host. The element is
// not connected yet.
func (a *App) Create(tag string, host element.HostElement) (*element.Element, error) {
	if a.isClosed() {
		return nil, ErrClosed
	}
	def, ok := a.registry.Get(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, tag)
	}
	if a.config.Renderer == nil {
		return nil, ErrNoRenderer
	}
	return def.Create(host, a.config.Renderer, element.WithLogger(a.logger))
}

// Connect creates an element and connects it. Connected elements are
// disconnected by Close. An element connected while the app closes is
// disconnected again and Connect returns ErrClosed.
func (a *App) Connect(tag string, host element.HostElement) (*element.Element, error) {
	el, err := a.Create(tag, host)
	if err != nil {
		return nil, err
	}
	if err := el.Connected(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		if err := el.Disconnected(); err != nil && !errors.Is(err, element.ErrNotConnected) {
			return nil, errors.Join(ErrClosed, err)
		}
		return nil, ErrClosed
	}
	a.elements[el] = struct{}{}
	a.mu.Unlock()
	return el, nil
}

// Disconnect disconnects an element connected through Connect.
func (a *App) Disconnect(el *element.Element) error {
	a.mu.Lock()
	delete(a.elements, el)
	a.mu.Unlock()
	return el.Disconnected()
}

// Close disconnects the connected elements and stops the router.
// Calling Close more than once is a no-op.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	elements := make([]*element.Element, 0, len(a.elements))
	for el := range a.elements {
		elements = append(elements, el)
	}
	a.elements = nil
	a.mu.Unlock()

	var errs []error
	for _, el := range elements {
		if err := el.Disconnected(); err != nil && !errors.Is(err, element.ErrNotConnected) {
			errs = append(errs, err)
		}
	}
	a.router.Close()
	return errors.Join(errs...)
}

func (a *App) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}
