// Package vtest provides fakes and render assertions for testing webcomp
// code without a browser.
//
// # Fakes
//
// Host is a router.Host whose animation frames run only on Tick:
//
//	host := vtest.NewHost("https://example.com/#/home")
//	r, _ := router.New(router.WithHost(host))
//	host.Navigate("#/about")
//	host.Tick() // dispatches "/about"
//
// Element is an in-memory host element. Attribute changes are delivered to
// observers as one batch on Flush:
//
//	el := vtest.NewElement("my-counter", "start", "5")
//	el.SetAttribute("start", "6")
//	el.SetAttribute("label", "taps")
//	el.Flush()
//
// Renderer records every render call.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, renderer.Last(), "Welcome")
//	vtest.ExpectNotContains(t, renderer.Last(), "Login")
package vtest
