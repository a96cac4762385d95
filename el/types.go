package el

import "github.com/webcomp-dev/webcomp/pkg/vdom"

// Type aliases for the VDOM primitives used by the DSL.
type VNode = vdom.VNode
type Props = vdom.Props
type Component = vdom.Component

// Attr is a single attribute passed to an element constructor.
type Attr struct {
	Key   string
	Value any
}
