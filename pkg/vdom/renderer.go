package vdom

// Renderer draws a tree into a host container. Rendering Empty tears down
// whatever was previously rendered there. The host platform supplies the
// implementation.
type Renderer interface {
	Render(tree *VNode, container, anchor any) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(tree *VNode, container, anchor any) error

// Render implements Renderer.
func (f RendererFunc) Render(tree *VNode, container, anchor any) error {
	return f(tree, container, anchor)
}
