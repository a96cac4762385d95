//go:build js && wasm

package router

import "syscall/js"

// DefaultHost returns the browser window as a Host, or nil when the global
// object has no location or history (for example inside a worker).
func DefaultHost() Host {
	global := js.Global()
	if global.Get("location").IsUndefined() || global.Get("history").IsUndefined() {
		return nil
	}
	return browserHost{}
}

type browserHost struct{}

func (browserHost) Location() Location {
	loc := js.Global().Get("location")
	return Location{
		Href:     loc.Get("href").String(),
		Pathname: loc.Get("pathname").String(),
		Search:   loc.Get("search").String(),
	}
}

func (browserHost) PushState(url string) {
	js.Global().Get("history").Call("pushState", nil, "", url)
}

func (browserHost) ReplaceState(url string) {
	js.Global().Get("history").Call("replaceState", nil, "", url)
}

func (browserHost) SetHref(href string) {
	js.Global().Get("location").Set("href", href)
}

// Schedule re-arms requestAnimationFrame after every tick until cancelled.
func (browserHost) Schedule(tick func()) func() {
	var (
		cb      js.Func
		frame   js.Value
		stopped bool
	)
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		if stopped {
			return nil
		}
		tick()
		if !stopped {
			frame = js.Global().Call("requestAnimationFrame", cb)
		}
		return nil
	})
	frame = js.Global().Call("requestAnimationFrame", cb)

	return func() {
		if stopped {
			return
		}
		stopped = true
		js.Global().Call("cancelAnimationFrame", frame)
		cb.Release()
	}
}
