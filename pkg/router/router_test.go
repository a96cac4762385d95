package router_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/webcomp-dev/webcomp/pkg/routepath"
	"github.com/webcomp-dev/webcomp/pkg/router"
	"github.com/webcomp-dev/webcomp/pkg/vtest"
)

func newServerRouter(t *testing.T, opts ...router.Option) *router.Router {
	t.Helper()
	r, err := router.New(opts...)
	require.NoError(t, err)
	t.Cleanup(r.ResetAll)
	return r
}

func newBrowserRouter(t *testing.T, href string, opts ...router.Option) (*router.Router, *vtest.Host) {
	t.Helper()
	host := vtest.NewHost(href)
	r, err := router.New(append([]router.Option{router.WithHost(host)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() {
		r.Close()
		r.ResetAll()
	})
	return r, host
}

func TestDispatchEndToEnd(t *testing.T) {
	r := newServerRouter(t)

	var got []router.Match
	_, err := r.On("/user/:id", func(m router.Match) { got = append(got, m) }, false)
	require.NoError(t, err)

	require.NoError(t, r.Dispatch("/user/42?tab=info"))

	require.Len(t, got, 1)
	assert.Equal(t, map[string]string{"id": "42"}, got[0].Params)
	assert.Equal(t, routepath.Query{"tab": "info"}, got[0].Query)
	assert.Equal(t, "/user/42", got[0].Path)
}

func TestDispatchFiresEveryMatch(t *testing.T) {
	r := newServerRouter(t)

	calls := map[string]int{}
	for _, name := range []string{"first", "second"} {
		_, err := r.On("*", func(router.Match) { calls[name]++ }, false)
		require.NoError(t, err)
	}
	_, err := r.On("/other", func(router.Match) { calls["other"]++ }, false)
	require.NoError(t, err)

	require.NoError(t, r.Dispatch("/anything"))

	assert.Equal(t, map[string]int{"first": 1, "second": 1}, calls)
}

func TestDispatchQueryIsFreshPerHandler(t *testing.T) {
	r := newServerRouter(t)

	var queries []routepath.Query
	for i := 0; i < 2; i++ {
		_, err := r.On("*", func(m router.Match) {
			queries = append(queries, m.Query)
			m.Query["mutated"] = true
		}, false)
		require.NoError(t, err)
	}

	require.NoError(t, r.Dispatch("/x?a=1,2&b&c=x"))

	require.Len(t, queries, 2)
	assert.Equal(t, []string{"1", "2"}, queries[1]["a"])
	assert.Equal(t, true, queries[1]["b"])
	assert.Equal(t, "x", queries[1]["c"])
	assert.Len(t, queries[1], 4, "second handler sees only its own mutation")
}

func TestOffStopsHandler(t *testing.T) {
	r := newServerRouter(t)

	fired := 0
	id, err := r.On("*", func(router.Match) { fired++ }, false)
	require.NoError(t, err)
	r.Off(id)

	for _, path := range []string{"/", "/a", "/a/b?c=d"} {
		require.NoError(t, r.Dispatch(path))
	}
	assert.Zero(t, fired)
}

func TestOnRejectsInvalidRoutes(t *testing.T) {
	r := newServerRouter(t)

	_, err := r.On("user/:id", func(router.Match) {}, false)
	var pe *routepath.PatternError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "W010", pe.Code())

	_, err = r.On("/user", nil, false)
	assert.ErrorIs(t, err, router.ErrNilHandler)

	assert.Empty(t, r.Routes())
}

func TestDispatchUsesSnapshot(t *testing.T) {
	r := newServerRouter(t)

	var order []string
	var secondID string
	_, err := r.On("*", func(router.Match) {
		order = append(order, "first")
		r.Off(secondID)
		_, _ = r.On("*", func(router.Match) { order = append(order, "late") }, false)
	}, false)
	require.NoError(t, err)
	secondID, err = r.On("*", func(router.Match) { order = append(order, "second") }, false)
	require.NoError(t, err)

	require.NoError(t, r.Dispatch("/x"))

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Len(t, r.Routes(), 2)
}

func TestWriteOnceConfiguration(t *testing.T) {
	r := newServerRouter(t)

	assert.Equal(t, router.ModeHash, r.Mode())
	assert.Equal(t, "/", r.Root())

	require.NoError(t, r.SetMode(router.ModeHistory))
	err := r.SetMode(router.ModeHistory)
	var ce *router.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "mode", ce.Field)
	assert.Equal(t, "history", ce.Value)
	assert.Equal(t, "W001", ce.Code())

	require.NoError(t, r.SetRoot("/app/"))
	assert.Equal(t, "/app", r.Root())
	err = r.SetRoot("/other")
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "root", ce.Field)
	assert.Equal(t, "/app", ce.Value)
	assert.Equal(t, "/app", r.Root())

	r.ResetAll()
	assert.Equal(t, router.ModeHash, r.Mode())
	assert.Equal(t, "/", r.Root())
	assert.False(t, r.Committed("mode"))
	require.NoError(t, r.SetMode(router.ModeHistory))
	require.NoError(t, r.SetRoot("/again"))
}

func TestSetModeRejectsUnknownMode(t *testing.T) {
	r := newServerRouter(t)

	err := r.SetMode("memory")
	assert.ErrorIs(t, err, router.ErrInvalidMode)
	assert.False(t, r.Committed("mode"))
	require.NoError(t, r.SetMode(router.ModeHash))

	_, err = router.New(router.WithMode("memory"))
	assert.ErrorIs(t, err, router.ErrInvalidMode)
}

func TestOptionsDoNotCommit(t *testing.T) {
	r := newServerRouter(t, router.WithMode(router.ModeHistory), router.WithRoot("/app"))

	assert.Equal(t, router.ModeHistory, r.Mode())
	assert.Equal(t, "/app", r.Root())
	require.NoError(t, r.SetMode(router.ModeHash))
	require.NoError(t, r.SetRoot("/"))
}

func TestRootOptionTrailingSlash(t *testing.T) {
	r, host := newBrowserRouter(t, "https://x.dev/app/user/42",
		router.WithMode(router.ModeHistory), router.WithRoot("/app/"))

	var ids []string
	_, err := r.On("/user/:id", func(m router.Match) { ids = append(ids, m.Params["id"]) }, false)
	require.NoError(t, err)
	host.Tick()

	assert.Equal(t, "/app", r.Root())
	path, err := r.CurrentPath()
	require.NoError(t, err)
	assert.Equal(t, "/user/42", path)
	assert.Equal(t, []string{"42"}, ids)
}

func TestResetHandlersKeepsPersistent(t *testing.T) {
	r := newServerRouter(t)

	var fired []string
	_, err := r.On("*", func(router.Match) { fired = append(fired, "temp") }, false)
	require.NoError(t, err)
	_, err = r.On("*", func(router.Match) { fired = append(fired, "kept") }, true)
	require.NoError(t, err)

	r.ResetHandlers()
	require.NoError(t, r.Dispatch("/"))
	assert.Equal(t, []string{"kept"}, fired)

	r.ResetAll()
	assert.Empty(t, r.Routes())
}

func TestServerContext(t *testing.T) {
	r := newServerRouter(t)

	assert.True(t, r.IsServer())
	assert.False(t, r.Listening())

	var hce *router.HostContextError
	require.ErrorAs(t, r.Push("/a"), &hce)
	assert.Equal(t, "W030", hce.Code())
	require.ErrorAs(t, r.Replace("/a"), &hce)

	_, err := r.CurrentPath()
	require.ErrorAs(t, err, &hce)
	require.ErrorAs(t, r.Dispatch(""), &hce)

	r.Close()
}

func TestDefaultRouter(t *testing.T) {
	r := router.Default()
	assert.Same(t, r, router.Default())
	assert.True(t, r.IsServer())
}

func TestHashNavigation(t *testing.T) {
	r, host := newBrowserRouter(t, "https://example.com/index.html#/home")

	path, err := r.CurrentPath()
	require.NoError(t, err)
	assert.Equal(t, "/home", path)

	require.NoError(t, r.Push("/user/42"))
	assert.Equal(t, "https://example.com/index.html#/user/42", host.Location().Href)

	path, err = r.CurrentPath()
	require.NoError(t, err)
	assert.Equal(t, "/user/42", path)

	err = r.Replace("/user/43")
	var oue *router.OperationUnsupportedError
	require.ErrorAs(t, err, &oue)
	assert.Equal(t, router.ModeHash, oue.Mode)
	assert.Equal(t, "W031", oue.Code())

	assert.ErrorIs(t, r.Push(""), router.ErrEmptyPath)
}

func TestHistoryNavigation(t *testing.T) {
	r, host := newBrowserRouter(t, "https://example.com/app/")
	require.NoError(t, r.SetMode(router.ModeHistory))
	require.NoError(t, r.SetRoot("/app/"))

	require.NoError(t, r.Push("/user/42/"))
	assert.Equal(t, "/app/user/42", host.Location().Pathname)

	require.NoError(t, r.Replace("/user/43"))
	history := host.History()
	require.Len(t, history, 2)
	assert.True(t, strings.HasSuffix(history[1], "/app/user/43"))

	path, err := r.CurrentPath()
	require.NoError(t, err)
	assert.Equal(t, "/user/43", path)
}

func TestWatcherDispatchesOnChange(t *testing.T) {
	r, host := newBrowserRouter(t, "https://example.com/#/home")
	assert.True(t, r.Listening())

	var paths []string
	_, err := r.On("*", func(m router.Match) { paths = append(paths, m.Path) }, false)
	require.NoError(t, err)

	host.Tick()
	host.Tick()
	host.Navigate("#/about?x=1")
	host.Tick()
	host.Tick()

	assert.Equal(t, []string{"/home", "/about"}, paths)

	r.Close()
	assert.False(t, r.Listening())
	assert.Zero(t, host.Scheduled())
}

func TestWatcherSkipInitial(t *testing.T) {
	r, host := newBrowserRouter(t, "https://example.com/#/home", router.WithSkipInitial(true))

	var paths []string
	_, err := r.On("*", func(m router.Match) { paths = append(paths, m.Path) }, false)
	require.NoError(t, err)

	host.Tick()
	assert.Empty(t, paths)

	host.Navigate("#/next")
	host.Tick()
	assert.Equal(t, []string{"/next"}, paths)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newServerRouter(t, router.WithMetrics(router.NewMetrics(reg, "")))

	_, err := r.On("/user/:id", func(router.Match) {}, false)
	require.NoError(t, err)
	require.NoError(t, r.Dispatch("/user/1"))
	require.NoError(t, r.Dispatch("/nothing"))
	require.NoError(t, r.SetMode(router.ModeHash))
	require.Error(t, r.SetMode(router.ModeHash))

	expected := `
# HELP webcomp_router_config_rejections_total Total number of rejected write-once configuration changes
# TYPE webcomp_router_config_rejections_total counter
webcomp_router_config_rejections_total{field="mode"} 1
# HELP webcomp_router_dispatches_total Total number of route dispatch passes
# TYPE webcomp_router_dispatches_total counter
webcomp_router_dispatches_total{matched="false"} 1
webcomp_router_dispatches_total{matched="true"} 1
# HELP webcomp_router_handler_calls_total Total number of route handler invocations
# TYPE webcomp_router_handler_calls_total counter
webcomp_router_handler_calls_total{pattern="/user/:id"} 1
# HELP webcomp_router_routes Number of registered routes
# TYPE webcomp_router_routes gauge
webcomp_router_routes 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"webcomp_router_config_rejections_total",
		"webcomp_router_dispatches_total",
		"webcomp_router_handler_calls_total",
		"webcomp_router_routes",
	))
}

type recordingTracer struct {
	trace.Tracer
	spans []string
}

type spanNameKey struct{}

func (rt *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	rt.spans = append(rt.spans, name)
	ctx, span := rt.Tracer.Start(ctx, name, opts...)
	return context.WithValue(ctx, spanNameKey{}, name), span
}

func TestDispatchIsTraced(t *testing.T) {
	tracer := &recordingTracer{Tracer: noop.NewTracerProvider().Tracer("test")}
	r := newServerRouter(t, router.WithTracer(tracer))

	var parent any
	_, err := r.On("/x", func(m router.Match) { parent = m.Context().Value(spanNameKey{}) }, false)
	require.NoError(t, err)

	require.NoError(t, r.DispatchContext(context.Background(), "/x"))
	assert.Equal(t, []string{"router.dispatch"}, tracer.spans)
	assert.Equal(t, "router.dispatch", parent, "handlers run inside the dispatch span")
}

func TestErrorsAreTyped(t *testing.T) {
	var coded interface{ Code() string }
	for _, err := range []error{
		&router.ConfigurationError{Field: "mode", Value: "hash"},
		&router.HostContextError{Op: "push"},
		&router.OperationUnsupportedError{Op: "replace", Mode: router.ModeHash},
	} {
		assert.True(t, errors.As(err, &coded), "%T", err)
		assert.NotEmpty(t, err.Error())
	}
}
