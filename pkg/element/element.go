package element

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// Element is one instance of a custom element: a host node rendering a
// component, with its attributes bridged to the component props.
type Element struct {
	tag      string
	host     HostElement
	comp     vdom.Component
	opts     Options
	renderer vdom.Renderer
	bridge   *Bridge
	logger   *slog.Logger

	mu        sync.Mutex
	container any
	inst      *vdom.Instance
	connected bool
}

// ElementOption configures an Element.
type ElementOption func(*Element)

// WithLogger sets the element logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) ElementOption {
	return func(e *Element) {
		e.logger = logger
	}
}

// WithBridge replaces the attribute bridge.
func WithBridge(b *Bridge) ElementOption {
	return func(e *Element) {
		e.bridge = b
	}
}

// New creates an element for host rendering comp. ElementDidCreate runs
// before New returns.
func New(tag string, host HostElement, comp vdom.Component, renderer vdom.Renderer, opts Options, eopts ...ElementOption) (*Element, error) {
	if comp == nil {
		return nil, ErrNilComponent
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	e := &Element{
		tag:      tag,
		host:     host,
		comp:     comp,
		opts:     opts,
		renderer: renderer,
	}
	for _, opt := range eopts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.bridge == nil {
		e.bridge = NewBridge(WithBridgeLogger(e.logger.With("tag", tag)))
	}

	if h, ok := comp.(DidCreateHook); ok {
		h.ElementDidCreate()
	}
	return e, nil
}

// Tag returns the tag name the element was created for.
func (e *Element) Tag() string { return e.tag }

// Host returns the host node.
func (e *Element) Host() HostElement { return e.host }

// Bridge returns the attribute bridge.
func (e *Element) Bridge() *Bridge { return e.bridge }

// Instance returns the mounted instance, or nil before Connected.
func (e *Element) Instance() *vdom.Instance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inst
}

// Container returns the render container: the shadow root when one is
// attached, the host otherwise.
func (e *Element) Container() any {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.container != nil {
		return e.container
	}
	return e.host
}

// Connected runs when the host is inserted into a document: it observes
// attributes, attaches the shadow root and renders the component once.
func (e *Element) Connected() error {
	if h, ok := e.comp.(WillConnectHook); ok {
		h.ElementWillConnect()
	}
	if err := e.initialize(); err != nil {
		return err
	}
	if h, ok := e.comp.(DidConnectHook); ok {
		h.ElementDidConnect()
	}
	return nil
}

func (e *Element) initialize() error {
	e.bridge.Observe(e.host)

	if e.opts.UseShadow != "" {
		shadow, err := e.host.AttachShadow(e.opts.UseShadow)
		if err != nil {
			e.bridge.Disconnect()
			return fmt.Errorf("element %s: attach shadow: %w", e.tag, err)
		}
		e.mu.Lock()
		e.container = shadow
		e.mu.Unlock()
	}

	return e.renderComponent()
}

// Convert converts the original markup into the component tree: the host
// attributes go through the bridge, the children become the component
// children unless the ignoreChildren flag is set, and the markup is
// cleared.
func (e *Element) Convert() (*vdom.VNode, error) {
	if err := e.bridge.ApplyAttributes(e.host.Attributes()); err != nil {
		return nil, err
	}

	var children []*vdom.VNode
	if !e.bridge.Flags().Bool(FlagIgnoreChildren) {
		children = convertChildren(e.host, e.opts.AllowScripts)
	}
	e.host.ClearChildren()

	props := e.bridge.Props()
	props[FlagsProp] = e.bridge.Flags()
	props[RootProp] = e
	return vdom.Comp(e.comp, props, children), nil
}

// renderComponent runs once per connection.
func (e *Element) renderComponent() error {
	tree, err := e.Convert()
	if err != nil {
		e.bridge.Disconnect()
		return err
	}

	inst := vdom.Mount(e.comp, tree.Props)
	container := e.Container()
	inst.OnInvalidate(func(i *vdom.Instance) {
		if err := e.renderer.Render(i.Render(), container, nil); err != nil {
			e.logger.Error("element render failed", "tag", e.tag, "error", err)
		}
	})
	if err := inst.Attach(); err != nil {
		e.bridge.Disconnect()
		return err
	}
	e.bridge.Mount(inst)

	e.mu.Lock()
	e.inst = inst
	e.connected = true
	e.mu.Unlock()

	if err := e.renderer.Render(inst.Render(), container, nil); err != nil {
		return fmt.Errorf("element %s: render: %w", e.tag, err)
	}
	e.logger.Debug("element rendered", "tag", e.tag)

	if h, ok := e.comp.(DidRenderHook); ok {
		h.ElementDidRender()
	}
	return nil
}

// Disconnected runs when the host leaves the document: it renders the
// empty tree and stops observing attributes.
func (e *Element) Disconnected() error {
	e.mu.Lock()
	if !e.connected {
		e.mu.Unlock()
		return ErrNotConnected
	}
	inst := e.inst
	e.inst = nil
	e.connected = false
	e.mu.Unlock()

	if h, ok := e.comp.(WillDisconnectHook); ok {
		h.ElementWillDisconnect()
	}

	err := e.renderer.Render(vdom.Empty, e.Container(), nil)
	e.bridge.Disconnect()
	e.bridge.Mount(nil)
	inst.Detach()

	if h, ok := e.comp.(DidDisconnectHook); ok {
		h.ElementDidDisconnect()
	}
	if err != nil {
		return fmt.Errorf("element %s: unmount: %w", e.tag, err)
	}
	return nil
}
