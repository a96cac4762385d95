package webcomp_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcomp-dev/webcomp"
	"github.com/webcomp-dev/webcomp/pkg/element"
	wcctx "github.com/webcomp-dev/webcomp/pkg/features/context"
	"github.com/webcomp-dev/webcomp/pkg/router"
	"github.com/webcomp-dev/webcomp/pkg/vdom"
	"github.com/webcomp-dev/webcomp/pkg/vtest"
)

type UserCard struct{}

func (UserCard) Render(props webcomp.Props) *webcomp.VNode {
	return webcomp.H("p", nil, webcomp.Textf("%v", props["name"]))
}

func newApp(t *testing.T, cfg webcomp.Config) (*webcomp.App, *vtest.Renderer) {
	t.Helper()
	r := &vtest.Renderer{}
	if cfg.Renderer == nil {
		cfg.Renderer = r
	}
	app, err := webcomp.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app, r
}

func TestNewDefaults(t *testing.T) {
	app, _ := newApp(t, webcomp.Config{})

	assert.Equal(t, router.ModeHash, app.Router().Mode())
	assert.Equal(t, router.DefaultRoot, app.Router().Root())
	assert.True(t, app.Router().IsServer())
	assert.NotNil(t, app.Registry())
	assert.NotNil(t, app.Logger())
	assert.Same(t, app.Bus(), app.Store().Bus())
}

func TestNewInvalidConfig(t *testing.T) {
	_, err := webcomp.New(webcomp.Config{Element: element.Options{UseShadow: "half"}})
	assert.ErrorIs(t, err, element.ErrInvalidShadowMode)

	_, err = webcomp.New(webcomp.Config{Router: webcomp.RouterConfig{Mode: "sideways"}})
	assert.ErrorIs(t, err, router.ErrInvalidMode)
}

func TestRegisterAndConnect(t *testing.T) {
	app, r := newApp(t, webcomp.Config{})

	def, err := app.Register(UserCard{}, "")
	require.NoError(t, err)
	assert.Equal(t, "user-card", def.Tag)

	_, err = app.Register(UserCard{}, "")
	assert.ErrorIs(t, err, element.ErrAlreadyDefined)

	host := vtest.NewElement("user-card", "name", "Ada")
	el, err := app.Connect("user-card", host)
	require.NoError(t, err)
	vtest.ExpectContains(t, r.Last(), "<p>Ada</p>")

	host.SetAttribute("name", "Grace")
	host.Flush()
	vtest.ExpectContains(t, r.Last(), "<p>Grace</p>")

	require.NoError(t, app.Disconnect(el))
	assert.Equal(t, vdom.Empty, r.Last())
	assert.Equal(t, 0, host.Observers())
}

func TestCreateErrors(t *testing.T) {
	app, _ := newApp(t, webcomp.Config{})
	_, err := app.Create("user-card", vtest.NewElement("user-card"))
	assert.ErrorIs(t, err, webcomp.ErrUnknownElement)

	bare, err := webcomp.New(webcomp.Config{})
	require.NoError(t, err)
	defer bare.Close()
	_, err = bare.Register(UserCard{}, "")
	require.NoError(t, err)
	_, err = bare.Create("user-card", vtest.NewElement("user-card"))
	assert.ErrorIs(t, err, webcomp.ErrNoRenderer)
}

func TestCloseDisconnectsElements(t *testing.T) {
	app, r := newApp(t, webcomp.Config{})
	_, err := app.Register(UserCard{}, "")
	require.NoError(t, err)

	hosts := []*vtest.Element{
		vtest.NewElement("user-card", "name", "a"),
		vtest.NewElement("user-card", "name", "b"),
	}
	for _, h := range hosts {
		_, err := app.Connect("user-card", h)
		require.NoError(t, err)
	}

	require.NoError(t, app.Close())
	for _, h := range hosts {
		assert.Equal(t, 0, h.Observers())
	}
	assert.Equal(t, vdom.Empty, r.Last())

	require.NoError(t, app.Close())
	_, err = app.Register(vdom.ComponentFunc(func(vdom.Props) *vdom.VNode { return nil }), "x-late")
	assert.ErrorIs(t, err, webcomp.ErrClosed)
	_, err = app.Create("user-card", vtest.NewElement("user-card"))
	assert.ErrorIs(t, err, webcomp.ErrClosed)
}

type closer struct {
	app *webcomp.App
}

func (c *closer) Render(webcomp.Props) *webcomp.VNode { return webcomp.H("span", nil) }

func (c *closer) ElementDidConnect() { c.app.Close() }

func TestConnectDuringClose(t *testing.T) {
	app, r := newApp(t, webcomp.Config{})
	comp := &closer{app: app}
	_, err := app.Register(comp, "x-closer")
	require.NoError(t, err)

	host := vtest.NewElement("x-closer")
	el, err := app.Connect("x-closer", host)
	assert.ErrorIs(t, err, webcomp.ErrClosed)
	assert.Nil(t, el)
	assert.Equal(t, 0, host.Observers())
	assert.Equal(t, vdom.Empty, r.Last())
}

func TestCloseJoinsRenderErrors(t *testing.T) {
	r := &vtest.Renderer{}
	app, _ := newApp(t, webcomp.Config{Renderer: r})
	_, err := app.Register(UserCard{}, "")
	require.NoError(t, err)
	_, err = app.Connect("user-card", vtest.NewElement("user-card"))
	require.NoError(t, err)

	r.Err = errors.New("detached")
	assert.ErrorContains(t, app.Close(), "detached")
}

func TestProvide(t *testing.T) {
	app, r := newApp(t, webcomp.Config{})

	themed := vdom.ComponentFunc(func(props vdom.Props) *vdom.VNode {
		v := props[wcctx.Prop].(wcctx.Value)
		return vdom.H("div", vdom.Props{"class": v.Current})
	})
	_, err := app.Register(app.Provide("theme", "light", themed), "theme-box")
	require.NoError(t, err)

	_, err = app.Connect("theme-box", vtest.NewElement("theme-box"))
	require.NoError(t, err)
	vtest.ExpectContains(t, r.Last(), `<div class="light">`)

	app.Store().Set("theme", "dark")
	vtest.ExpectContains(t, r.Last(), `<div class="dark">`)
}

func TestRouterize(t *testing.T) {
	app, r := newApp(t, webcomp.Config{})

	page := vdom.ComponentFunc(func(props vdom.Props) *vdom.VNode {
		b := props[router.BindingProp].(router.Binding)
		return vdom.H("main", nil, vdom.Text(fmt.Sprintf("%s %s", b.State.Path, b.State.Params["id"])))
	})
	routed := app.Routerize(page)
	_, err := app.Register(routed, "app-page")
	require.NoError(t, err)

	_, err = app.Router().On("/users/:id", func(router.Match) {}, false)
	require.NoError(t, err)
	_, err = app.Connect("app-page", vtest.NewElement("app-page"))
	require.NoError(t, err)

	require.NoError(t, app.Router().Dispatch("/users/7?tab=posts"))
	assert.Equal(t, "/users/7", routed.State().Path)
	assert.Equal(t, "posts", routed.State().Query.Get("tab"))
	vtest.ExpectContains(t, r.Last(), "<main>/users/7 </main>")
}

func TestRouterWithHost(t *testing.T) {
	host := vtest.NewHost("http://localhost/app/users/3")
	app, _ := newApp(t, webcomp.Config{
		Router: webcomp.RouterConfig{Mode: router.ModeHistory, Root: "/app", Host: host},
	})

	var got []string
	_, err := app.Router().On("/users/:id", func(m router.Match) {
		got = append(got, m.Params["id"])
	}, false)
	require.NoError(t, err)

	host.Tick()
	assert.Equal(t, []string{"3"}, got)

	require.NoError(t, app.Router().Push("/users/4"))
	host.Tick()
	assert.Equal(t, []string{"3", "4"}, got)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	app, _ := newApp(t, webcomp.Config{Metrics: reg})

	_, err := app.Router().On("/a", func(router.Match) {}, false)
	require.NoError(t, err)
	require.NoError(t, app.Router().Dispatch("/a"))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "webcomp_router_routes")
	assert.Contains(t, names, "webcomp_router_dispatches_total")
}

func TestOnRecoversPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	app, _ := newApp(t, webcomp.Config{Metrics: reg})

	_, err := app.On("/users/:id", func(router.Match) { panic("boom") }, false)
	require.NoError(t, err)
	var got []string
	_, err = app.On("/users/:id", func(m router.Match) { got = append(got, m.Params["id"]) }, false)
	require.NoError(t, err)

	require.NotPanics(t, func() { require.NoError(t, app.Router().Dispatch("/users/9")) })
	assert.Equal(t, []string{"9"}, got)

	_, err = app.On("/x", nil, false)
	assert.ErrorIs(t, err, router.ErrNilHandler)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "webcomp_route_handler_calls_total")
}
