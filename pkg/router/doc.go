// Package router is a client-side router for webcomp applications.
//
// Routes are Express-style patterns (see package routepath) bound to
// handlers. Every dispatch runs all matching handlers, not just the first:
//
//	r, _ := router.New(router.WithHost(router.DefaultHost()))
//	r.On("/user/:id", func(m router.Match) {
//	    fmt.Println(m.Params["id"], m.Query.Get("tab"))
//	}, false)
//	r.Dispatch("/user/42?tab=info")
//
// # Modes
//
// In hash mode (the default) the current path is the URL fragment after
// "#". In history mode it is the pathname below Root, and Push and Replace
// write to the history stack. Mode and root can each be set once; ResetAll
// reopens them.
//
// # Hosts
//
// A router reads the location through a Host. Under js/wasm DefaultHost is
// the browser window and the router polls the location once per animation
// frame. Without a host the router runs in server context: matching and
// explicit dispatch work, navigation fails with *HostContextError.
//
// # Components
//
// Routerize injects a Binding into a component's props, and RouteView renders
// its content only while the current path equals its path.
package router
