// Package webcomp provides the public API for building browser custom
// elements from Go components.
//
// This is the recommended import for most applications:
//
//	import "github.com/webcomp-dev/webcomp"
//
// Usage:
//
//	type Counter struct{}
//
//	func (Counter) Render(props webcomp.Props) *webcomp.VNode {
//	    return webcomp.H("span", nil, webcomp.Textf("%v", props["count"]))
//	}
//
//	app, _ := webcomp.New(webcomp.Config{Renderer: renderer})
//	app.Register(Counter{}, "x-counter")
package webcomp

import (
	"github.com/webcomp-dev/webcomp/pkg/element"
	"github.com/webcomp-dev/webcomp/pkg/router"
	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// =============================================================================
// Virtual DOM (re-export from pkg/vdom)
// =============================================================================

// VNode is a virtual DOM node.
type VNode = vdom.VNode

// Props holds element attributes or component props.
type Props = vdom.Props

// Component renders props into a tree.
type Component = vdom.Component

// ComponentFunc adapts a function to Component.
type ComponentFunc = vdom.ComponentFunc

var (
	// H creates an element node.
	H = vdom.H

	// Text creates a text node.
	Text = vdom.Text

	// Textf creates a formatted text node.
	Textf = vdom.Textf

	// Fragment groups nodes without a wrapper.
	Fragment = vdom.Fragment

	// Comp creates a component node.
	Comp = vdom.Comp
)

// =============================================================================
// Elements and routing (re-export)
// =============================================================================

// Flags holds the element flags set through "w:" attributes.
type Flags = element.Flags

// Match is passed to route handlers.
type Match = router.Match

// SplitProps separates the flags and the root element from component
// props.
var SplitProps = element.SplitProps
