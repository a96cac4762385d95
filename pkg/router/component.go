package router

import (
	"sync"

	"github.com/webcomp-dev/webcomp/pkg/routepath"
	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// BindingProp is the prop under which a routerized component receives its
// Binding.
const BindingProp = "router"

// Binding is the routing API handed to a routerized component.
type Binding struct {
	Push          func(path string) error
	Replace       func(path string) error
	On            func(pattern string, handler Handler, persist bool) (string, error)
	ResetAll      func()
	ResetHandlers func()

	// Root is the router root at render time.
	Root string

	// State is the last dispatched match. Before the first dispatch only
	// Path is set.
	State Match
}

// Routed wraps a component and injects a Binding as the "router" prop.
// Mounting it registers a persistent "*" route that keeps State current.
type Routed struct {
	router *Router
	inner  vdom.Component

	mu      sync.Mutex
	state   Match
	routeID string
}

var _ vdom.Mountable = (*Routed)(nil)

// Routerize wraps comp so it renders with a Binding for r. A nil router
// means Default().
func Routerize(r *Router, comp vdom.Component) *Routed {
	if r == nil {
		r = Default()
	}
	c := &Routed{router: r, inner: comp}
	if path, err := r.CurrentPath(); err == nil {
		c.state.Path = path
	}
	return c
}

// Mount registers the state-tracking route. invalidate is called after
// every dispatch.
func (c *Routed) Mount(invalidate func()) error {
	id, err := c.router.On(routepath.Wildcard, func(m Match) {
		c.mu.Lock()
		c.state = m
		c.mu.Unlock()
		if invalidate != nil {
			invalidate()
		}
	}, true)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.routeID = id
	c.mu.Unlock()
	return nil
}

// Unmount removes the state-tracking route.
func (c *Routed) Unmount() {
	c.mu.Lock()
	id := c.routeID
	c.routeID = ""
	c.mu.Unlock()
	if id != "" {
		c.router.Off(id)
	}
}

// State returns the last dispatched match.
func (c *Routed) State() Match {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Binding returns the current binding.
func (c *Routed) Binding() Binding {
	r := c.router
	return Binding{
		Push:          r.Push,
		Replace:       r.Replace,
		On:            r.On,
		ResetAll:      r.ResetAll,
		ResetHandlers: r.ResetHandlers,
		Root:          r.Root(),
		State:         c.State(),
	}
}

// Render renders the wrapped component with the binding added to props.
func (c *Routed) Render(props vdom.Props) *vdom.VNode {
	p := props.Clone()
	p[BindingProp] = c.Binding()
	return vdom.Comp(c.inner, p, vdom.ChildrenOf(props))
}

// RouteView renders its content only while the current path equals Path.
//
// Content is either Component or a single child node, never both. Unless
// Shallow is set, Component is routerized before rendering.
type RouteView struct {
	Path      string
	Component vdom.Component
	Children  []*vdom.VNode
	Shallow   bool

	// Router defaults to Default().
	Router *Router

	mu      sync.Mutex
	current string
	routeID string
	routed  *Routed
}

var _ vdom.Mountable = (*RouteView)(nil)

// Validate checks the content of the route.
func (rt *RouteView) Validate() error {
	if rt.Component != nil && len(rt.Children) > 0 {
		return ErrRouteComponentAndChild
	}
	if len(rt.Children) > 1 {
		return ErrRouteMultipleChildren
	}
	return nil
}

func (rt *RouteView) router() *Router {
	if rt.Router == nil {
		return Default()
	}
	return rt.Router
}

// Mount validates the route and starts tracking the current path.
func (rt *RouteView) Mount(invalidate func()) error {
	if err := rt.Validate(); err != nil {
		return err
	}
	r := rt.router()

	rt.mu.Lock()
	if path, err := r.CurrentPath(); err == nil {
		rt.current = path
	}
	if rt.Component != nil && !rt.Shallow {
		rt.routed = Routerize(r, rt.Component)
	}
	routed := rt.routed
	rt.mu.Unlock()

	if routed != nil {
		if err := routed.Mount(invalidate); err != nil {
			return err
		}
	}

	id, err := r.On(routepath.Wildcard, func(m Match) {
		rt.mu.Lock()
		changed := rt.current != m.Path
		rt.current = m.Path
		rt.mu.Unlock()
		if changed && invalidate != nil {
			invalidate()
		}
	}, true)
	if err != nil {
		return err
	}

	rt.mu.Lock()
	rt.routeID = id
	rt.mu.Unlock()
	return nil
}

// Unmount stops tracking the current path.
func (rt *RouteView) Unmount() {
	rt.mu.Lock()
	id, routed := rt.routeID, rt.routed
	rt.routeID = ""
	rt.mu.Unlock()

	if id != "" {
		rt.router().Off(id)
	}
	if routed != nil {
		routed.Unmount()
	}
}

// Active reports whether the last seen path equals the route path.
func (rt *RouteView) Active() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.current == routepath.TrimSlashes(rt.Path)
}

// Render returns the route content, or nil while the route is inactive.
func (rt *RouteView) Render(props vdom.Props) *vdom.VNode {
	if !rt.Active() {
		return nil
	}

	if rt.Component == nil {
		children := rt.Children
		if len(children) == 0 {
			children = vdom.ChildrenOf(props)
		}
		if len(children) == 0 {
			return nil
		}
		return children[0]
	}

	rt.mu.Lock()
	routed := rt.routed
	rt.mu.Unlock()

	if rt.Shallow {
		return vdom.Comp(rt.Component, nil)
	}
	if routed == nil {
		routed = Routerize(rt.router(), rt.Component)
	}
	return vdom.Comp(routed, nil)
}
