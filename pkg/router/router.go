package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/webcomp-dev/webcomp/pkg/routepath"
)

const tracerName = "github.com/webcomp-dev/webcomp/pkg/router"

// Write-once configuration fields.
const (
	fieldMode = "mode"
	fieldRoot = "root"
)

const (
	opPush    = "push"
	opReplace = "replace"
)

// Router matches the current location against registered routes and runs
// every matching handler when the location changes.
//
// Mode and root are write-once: the first SetMode/SetRoot succeeds, any
// later one fails with *ConfigurationError until ResetAll reopens them.
type Router struct {
	mu        sync.Mutex
	mode      Mode
	root      string
	committed map[string]bool

	table   *Table
	host    Host
	watcher *Watcher

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

type options struct {
	mode        Mode
	root        string
	skipInitial bool
	host        Host
	logger      *slog.Logger
	metrics     *Metrics
	tracer      trace.Tracer
}

// Option configures a Router.
type Option func(*options)

// WithMode sets the initial mode. It does not count as the write-once
// assignment.
func WithMode(mode Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithRoot sets the initial root. It does not count as the write-once
// assignment.
func WithRoot(root string) Option {
	return func(o *options) {
		o.root = root
	}
}

// WithSkipInitial records the location at startup as the baseline instead of
// dispatching it.
func WithSkipInitial(skip bool) Option {
	return func(o *options) {
		o.skipInitial = skip
	}
}

// WithHost sets the browser-like host. Without one the router runs in server
// context.
func WithHost(host Host) Option {
	return func(o *options) {
		o.host = host
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the Prometheus collectors to record into.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracer sets the tracer used for dispatch spans. Default: the global
// OpenTelemetry tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// New creates a router. When a host is configured the router starts
// watching the location immediately.
func New(opts ...Option) (*Router, error) {
	o := options{mode: ModeHash, root: DefaultRoot}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.mode.Valid() {
		return nil, fmt.Errorf("router: unexpected mode %q: %w", o.mode, ErrInvalidMode)
	}
	if o.root != DefaultRoot {
		o.root = routepath.TrimSlashes(o.root)
	}
	if o.root == "" {
		o.root = DefaultRoot
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}

	r := &Router{
		mode:      o.mode,
		root:      o.root,
		committed: make(map[string]bool),
		table:     NewTable(),
		host:      o.host,
		logger:    o.logger,
		metrics:   o.metrics,
		tracer:    o.tracer,
	}

	if r.host != nil {
		r.watcher = NewWatcher(r.host, r.fragment)
		r.watcher.Watch(func(path string) {
			r.dispatch(context.Background(), path)
		}, o.skipInitial)
	}

	return r, nil
}

var (
	defaultOnce   sync.Once
	defaultRouter *Router
)

// Default returns the process-wide router bound to DefaultHost.
func Default() *Router {
	defaultOnce.Do(func() {
		r, err := New(WithHost(DefaultHost()))
		if err != nil {
			panic(err)
		}
		defaultRouter = r
	})
	return defaultRouter
}

// Mode returns the active mode.
func (r *Router) Mode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

// Root returns the active root.
func (r *Router) Root() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.root
}

// SetMode assigns the mode once.
func (r *Router) SetMode(mode Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.committed[fieldMode] {
		return r.reject(fieldMode, string(r.mode))
	}
	if !mode.Valid() {
		return fmt.Errorf("router: unexpected mode %q: %w", mode, ErrInvalidMode)
	}
	r.mode = mode
	r.committed[fieldMode] = true
	return nil
}

// SetRoot assigns the root once. The stored root has its trailing slash
// trimmed.
func (r *Router) SetRoot(root string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.committed[fieldRoot] {
		return r.reject(fieldRoot, r.root)
	}
	r.root = routepath.TrimSlashes(root)
	r.committed[fieldRoot] = true
	return nil
}

// reject must be called with r.mu held.
func (r *Router) reject(field, value string) error {
	r.metrics.rejected(field)
	r.logger.Warn("router reconfiguration rejected", "field", field, "value", value)
	return &ConfigurationError{Field: field, Value: value}
}

// Committed reports whether the named write-once field ("mode" or "root")
// has been assigned.
func (r *Router) Committed(field string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.committed[field]
}

// IsServer reports whether the router runs without a host.
func (r *Router) IsServer() bool {
	return r.host == nil
}

// Listening reports whether the router is watching the location.
func (r *Router) Listening() bool {
	return r.watcher != nil && r.watcher.Watching()
}

// On registers handler for pattern and returns the route ID. Persistent
// routes survive ResetHandlers.
func (r *Router) On(pattern string, handler Handler, persist bool) (string, error) {
	if handler == nil {
		return "", ErrNilHandler
	}
	p, err := routepath.Compile(pattern)
	if err != nil {
		return "", err
	}
	id := r.table.Add(&Route{Pattern: p, Handler: handler, Persist: persist})
	r.metrics.setRoutes(r.table.Len())
	return id, nil
}

// Off removes the route with the given ID. Unknown IDs are ignored.
func (r *Router) Off(id string) {
	r.table.Remove(id)
	r.metrics.setRoutes(r.table.Len())
}

// Routes returns a snapshot of the registered routes.
func (r *Router) Routes() []*Route {
	return r.table.Snapshot()
}

// Dispatch runs every handler whose pattern matches fullPath. An empty
// fullPath dispatches the current location.
func (r *Router) Dispatch(fullPath string) error {
	return r.DispatchContext(context.Background(), fullPath)
}

// DispatchContext is Dispatch with a context for tracing.
func (r *Router) DispatchContext(ctx context.Context, fullPath string) error {
	if fullPath == "" {
		current, err := r.CurrentPath()
		if err != nil {
			return err
		}
		fullPath = current
	}
	r.dispatch(ctx, fullPath)
	return nil
}

func (r *Router) dispatch(ctx context.Context, fullPath string) {
	ctx, span := r.tracer.Start(ctx, "router.dispatch",
		trace.WithAttributes(attribute.String("webcomp.fragment", fullPath)))
	defer span.End()

	path, qs := routepath.SplitFragment(fullPath)

	fired := 0
	for _, route := range r.table.Snapshot() {
		params, ok := route.Pattern.Exec(path)
		if !ok {
			continue
		}
		fired++
		r.metrics.handlerCalled(route.Pattern.String())
		route.Handler(Match{
			Params: params,
			Query:  routepath.ParseQuery(qs),
			Path:   path,
			ctx:    ctx,
		})
	}

	span.SetAttributes(attribute.Int("webcomp.handlers", fired))
	r.metrics.dispatched(fired)
	r.logger.Debug("router dispatch", "path", path, "handlers", fired)
}

// CurrentPath returns the current location fragment.
func (r *Router) CurrentPath() (string, error) {
	if r.host == nil {
		return "", &HostContextError{Op: "reading the location"}
	}
	return r.fragment(), nil
}

func (r *Router) fragment() string {
	r.mu.Lock()
	mode, root := r.mode, r.root
	r.mu.Unlock()
	return Fragment(r.host.Location(), mode, root)
}

// Push navigates to path, adding a history entry.
func (r *Router) Push(path string) error {
	return r.navigate(opPush, path)
}

// Replace navigates to path, replacing the current history entry. It is
// only available in history mode.
func (r *Router) Replace(path string) error {
	return r.navigate(opReplace, path)
}

func (r *Router) navigate(op, path string) error {
	if r.host == nil {
		return &HostContextError{Op: op}
	}
	if path == "" {
		return ErrEmptyPath
	}

	r.mu.Lock()
	mode, root := r.mode, r.root
	r.mu.Unlock()

	if mode == ModeHistory {
		target := joinRoot(root, path)
		if op == opPush {
			r.host.PushState(target)
		} else {
			r.host.ReplaceState(target)
		}
		r.logger.Debug("router navigate", "op", op, "mode", mode, "url", target)
	} else {
		if op == opReplace {
			return &OperationUnsupportedError{Op: op, Mode: mode}
		}
		base, _, _ := strings.Cut(r.host.Location().Href, "#")
		r.host.SetHref(base + "#" + path)
		r.logger.Debug("router navigate", "op", op, "mode", mode, "hash", path)
	}

	r.metrics.navigated(mode, op)
	return nil
}

// joinRoot prefixes path with root. A root of "/" adds nothing, and a
// non-empty path always gains a leading slash.
func joinRoot(root, path string) string {
	root = routepath.TrimSlashes(root)
	path = routepath.TrimSlashes(path)
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if root+path == "" {
		return "/"
	}
	return root + path
}

// ResetAll removes every route and restores the default mode and root,
// reopening both write-once fields. Meant for test teardown.
func (r *Router) ResetAll() {
	r.mu.Lock()
	r.mode = ModeHash
	r.root = DefaultRoot
	clear(r.committed)
	r.mu.Unlock()

	r.table.Clear(true)
	r.metrics.setRoutes(0)
}

// ResetHandlers removes every route not registered as persistent.
func (r *Router) ResetHandlers() {
	r.table.Clear(false)
	r.metrics.setRoutes(r.table.Len())
}

// Close stops watching the location.
func (r *Router) Close() {
	if r.watcher != nil {
		r.watcher.Stop()
	}
}
