package element

// Lifecycle hooks. A component implements any subset of them to be told
// about the element it is rendered in.
type (
	DidCreateHook interface {
		ElementDidCreate()
	}
	WillConnectHook interface {
		ElementWillConnect()
	}
	DidConnectHook interface {
		ElementDidConnect()
	}
	DidRenderHook interface {
		ElementDidRender()
	}
	WillDisconnectHook interface {
		ElementWillDisconnect()
	}
	DidDisconnectHook interface {
		ElementDidDisconnect()
	}
)

// Hooks forwards every lifecycle hook to Target when Target implements it.
// Embed it in wrapper components.
type Hooks struct {
	Target any
}

func (h Hooks) ElementDidCreate() {
	if t, ok := h.Target.(DidCreateHook); ok {
		t.ElementDidCreate()
	}
}

func (h Hooks) ElementWillConnect() {
	if t, ok := h.Target.(WillConnectHook); ok {
		t.ElementWillConnect()
	}
}

func (h Hooks) ElementDidConnect() {
	if t, ok := h.Target.(DidConnectHook); ok {
		t.ElementDidConnect()
	}
}

func (h Hooks) ElementDidRender() {
	if t, ok := h.Target.(DidRenderHook); ok {
		t.ElementDidRender()
	}
}

func (h Hooks) ElementWillDisconnect() {
	if t, ok := h.Target.(WillDisconnectHook); ok {
		t.ElementWillDisconnect()
	}
}

func (h Hooks) ElementDidDisconnect() {
	if t, ok := h.Target.(DidDisconnectHook); ok {
		t.ElementDidDisconnect()
	}
}
