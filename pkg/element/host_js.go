//go:build js && wasm

package element

import "syscall/js"

// WrapHost adapts a DOM element to HostElement.
func WrapHost(v js.Value) HostElement {
	return domElement{node: domNode{v}}
}

type domNode struct {
	v js.Value
}

func (n domNode) NodeType() NodeType { return NodeType(n.v.Get("nodeType").Int()) }
func (n domNode) NodeName() string   { return n.v.Get("nodeName").String() }

func (n domNode) NodeValue() string {
	val := n.v.Get("nodeValue")
	if val.IsNull() || val.IsUndefined() {
		return ""
	}
	return val.String()
}

func (n domNode) Attributes() []Attr {
	list := n.v.Get("attributes")
	if !list.Truthy() {
		return nil
	}
	out := make([]Attr, list.Length())
	for i := range out {
		a := list.Index(i)
		out[i] = Attr{Name: a.Get("name").String(), Value: a.Get("value").String()}
	}
	return out
}

func (n domNode) ChildNodes() []Node {
	list := n.v.Get("childNodes")
	out := make([]Node, list.Length())
	for i := range out {
		out[i] = domNode{list.Index(i)}
	}
	return out
}

type domElement struct {
	node domNode
}

func (e domElement) NodeType() NodeType { return e.node.NodeType() }
func (e domElement) NodeName() string   { return e.node.NodeName() }
func (e domElement) NodeValue() string  { return e.node.NodeValue() }
func (e domElement) Attributes() []Attr { return e.node.Attributes() }
func (e domElement) ChildNodes() []Node { return e.node.ChildNodes() }
func (e domElement) Value() js.Value    { return e.node.v }
func (e domElement) ClearChildren()     { e.node.v.Set("innerHTML", "") }

func (e domElement) Attribute(name string) (string, bool) {
	if !e.node.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.node.v.Call("getAttribute", name).String(), true
}

func (e domElement) AttachShadow(mode string) (any, error) {
	opts := js.Global().Get("Object").New()
	opts.Set("mode", mode)
	return e.node.v.Call("attachShadow", opts), nil
}

// ObserveAttributes wraps a MutationObserver. Every observer callback is
// delivered as one batch.
func (e domElement) ObserveAttributes(fn func(batch []MutationRecord)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		records := args[0]
		batch := make([]MutationRecord, 0, records.Length())
		for i := 0; i < records.Length(); i++ {
			r := records.Index(i)
			if r.Get("type").String() != "attributes" {
				continue
			}
			batch = append(batch, MutationRecord{AttributeName: r.Get("attributeName").String()})
		}
		fn(batch)
		return nil
	})

	observer := js.Global().Get("MutationObserver").New(cb)
	opts := js.Global().Get("Object").New()
	opts.Set("attributes", true)
	opts.Set("attributeOldValue", true)
	observer.Call("observe", e.node.v, opts)

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		observer.Call("disconnect")
		cb.Release()
	}
}
