package el

import "github.com/webcomp-dev/webcomp/pkg/vdom"

func Text(content string) *VNode              { return vdom.Text(content) }
func Textf(format string, args ...any) *VNode { return vdom.Textf(format, args...) }
func Fragment(children ...any) *VNode         { return vdom.Fragment(children...) }
func Comp(c Component, args ...any) *VNode    { return compOf(c, args) }

// compOf builds a component node; Attr and Props arguments become props.
func compOf(c Component, args []any) *VNode {
	props := Props{}
	children := make([]any, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			setAttr(props, v)
		case []Attr:
			for _, a := range v {
				setAttr(props, a)
			}
		case Props:
			for k, val := range v {
				props[k] = val
			}
		default:
			children = append(children, v)
		}
	}
	return vdom.Comp(c, props, children...)
}

// If returns node when condition holds, otherwise nil.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns ifTrue or ifFalse.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When calls fn only when condition holds.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps items to nodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(item, i); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Repeat calls fn n times.
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	out := make([]*VNode, 0, n)
	for i := 0; i < n; i++ {
		if node := fn(i); node != nil {
			out = append(out, node)
		}
	}
	return out
}
