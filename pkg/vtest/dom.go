package vtest

import (
	"slices"
	"strings"
	"sync"

	"github.com/webcomp-dev/webcomp/pkg/element"
)

// Text is a host text node.
type Text string

func (t Text) NodeType() element.NodeType { return element.TextNode }
func (t Text) NodeName() string           { return "#text" }
func (t Text) NodeValue() string          { return string(t) }
func (t Text) Attributes() []element.Attr { return nil }
func (t Text) ChildNodes() []element.Node { return nil }

// Element is an in-memory host element. Attribute changes are queued and
// delivered to observers as one batch on Flush, like mutation records
// delivered at the end of a microtask.
type Element struct {
	mu        sync.Mutex
	tag       string
	attrs     []element.Attr
	children  []element.Node
	pending   []element.MutationRecord
	observers map[int]func([]element.MutationRecord)
	nextID    int
	shadow    *Shadow
	cleared   int
}

var _ element.HostElement = (*Element)(nil)

// Shadow is the shadow root returned by Element.AttachShadow.
type Shadow struct {
	Mode string
	Host *Element
}

// NewElement creates an element with attributes given as name/value pairs.
//
// Example:
//
//	el := vtest.NewElement("my-counter", "start", "5", "w:protected", "")
func NewElement(tag string, attrs ...string) *Element {
	if len(attrs)%2 != 0 {
		panic("vtest: NewElement expects name/value pairs")
	}
	e := &Element{tag: tag, observers: make(map[int]func([]element.MutationRecord))}
	for i := 0; i < len(attrs); i += 2 {
		e.attrs = append(e.attrs, element.Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	return e
}

// Append adds child nodes and returns e.
func (e *Element) Append(children ...element.Node) *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.children = append(e.children, children...)
	return e
}

func (e *Element) NodeType() element.NodeType { return element.ElementNode }
func (e *Element) NodeName() string           { return strings.ToUpper(e.tag) }
func (e *Element) NodeValue() string          { return "" }

func (e *Element) Attributes() []element.Attr {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.attrs)
}

func (e *Element) ChildNodes() []element.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.children)
}

// Attribute implements element.AttributeReader.
func (e *Element) Attribute(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute sets an attribute and queues a mutation record.
func (e *Element) SetAttribute(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = append(e.pending, element.MutationRecord{AttributeName: name})
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, element.Attr{Name: name, Value: value})
}

// RemoveAttribute removes an attribute and queues a mutation record.
func (e *Element) RemoveAttribute(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = append(e.pending, element.MutationRecord{AttributeName: name})
	e.attrs = slices.DeleteFunc(e.attrs, func(a element.Attr) bool { return a.Name == name })
}

// Flush delivers the queued mutation records to every observer as one
// batch.
func (e *Element) Flush() {
	e.mu.Lock()
	batch := e.pending
	e.pending = nil
	fns := make([]func([]element.MutationRecord), 0, len(e.observers))
	for _, id := range sortedKeys(e.observers) {
		fns = append(fns, e.observers[id])
	}
	e.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	for _, fn := range fns {
		fn(slices.Clone(batch))
	}
}

// ObserveAttributes implements element.ObservableElement.
func (e *Element) ObserveAttributes(fn func([]element.MutationRecord)) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.observers[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.observers, id)
		e.mu.Unlock()
	}
}

// Observers returns the number of active attribute observers.
func (e *Element) Observers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.observers)
}

// AttachShadow implements element.HostElement.
func (e *Element) AttachShadow(mode string) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shadow = &Shadow{Mode: mode, Host: e}
	return e.shadow, nil
}

// ShadowRoot returns the attached shadow root, or nil.
func (e *Element) ShadowRoot() *Shadow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shadow
}

// ClearChildren implements element.HostElement.
func (e *Element) ClearChildren() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.children = nil
	e.cleared++
}

// Cleared returns how many times the markup was cleared.
func (e *Element) Cleared() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cleared
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
