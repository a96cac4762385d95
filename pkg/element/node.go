package element

// NodeType mirrors the DOM node type constants the element layer cares
// about.
type NodeType int

const (
	ElementNode NodeType = 1
	TextNode    NodeType = 3
)

// Node is a read-only view of a host DOM node.
type Node interface {
	NodeType() NodeType
	NodeName() string
	NodeValue() string
	Attributes() []Attr
	ChildNodes() []Node
}

// MutationRecord describes one observed attribute change.
type MutationRecord struct {
	AttributeName string
}

// AttributeReader reads current attribute values.
type AttributeReader interface {
	// Attribute returns the value of the named attribute and whether it is
	// present.
	Attribute(name string) (string, bool)
}

// ObservableElement delivers attribute changes in batches, one callback per
// batch, until the returned stop func is called.
type ObservableElement interface {
	AttributeReader
	ObserveAttributes(fn func(batch []MutationRecord)) (stop func())
}

// HostElement is the host node a custom element instance lives on.
type HostElement interface {
	Node
	ObservableElement

	// AttachShadow attaches a shadow root with the given mode ("open" or
	// "closed") and returns it as a render container.
	AttachShadow(mode string) (any, error)

	// ClearChildren removes the original markup.
	ClearChildren()
}
