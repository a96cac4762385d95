//go:build !(js && wasm)

package router

// DefaultHost returns the host of the running program. Outside a browser
// there is none, so routers built on it run in server context.
func DefaultHost() Host {
	return nil
}
