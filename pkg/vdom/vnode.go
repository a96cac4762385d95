package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// ChildrenProp is the prop under which a component receives its children.
const ChildrenProp = "children"

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes, or component props
	Children []*VNode  // Child nodes
	Text     string    // For KindText
	Comp     Component // For KindComponent
}

// Props holds attributes for elements and props for components.
type Props map[string]any

// Clone returns a shallow copy of p. A nil map clones to an empty one.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a new Props with others overlaid on p in order.
func (p Props) Merge(others ...Props) Props {
	out := p.Clone()
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// Without returns a copy of p without the given keys.
func (p Props) Without(keys ...string) Props {
	out := p.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Component is anything that can render a tree from props.
type Component interface {
	Render(props Props) *VNode
}

// ComponentFunc adapts a render function to Component.
type ComponentFunc func(props Props) *VNode

// Render implements Component.
func (f ComponentFunc) Render(props Props) *VNode {
	return f(props)
}

// Mountable is implemented by components that keep state between renders.
// Mount is called once before the first render with a callback that
// requests a re-render; Unmount is called on teardown.
type Mountable interface {
	Component
	Mount(invalidate func()) error
	Unmount()
}

// Empty is the tree rendered to tear down a mounted component.
var Empty = &VNode{Kind: KindFragment}

// IsEmpty reports whether n renders nothing.
func IsEmpty(n *VNode) bool {
	return n == nil || n == Empty || (n.Kind == KindFragment && len(n.Children) == 0)
}
