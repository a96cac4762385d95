// Package el provides the UI DSL for webcomp components.
//
// Element constructors take any mix of attributes, props, children and
// text:
//
//	import . "github.com/webcomp-dev/webcomp/el"
//
//	func (Counter) Render(props vdom.Props) *vdom.VNode {
//	    return Div(Class("counter"),
//	        Span(Class("count"), Textf("%v", props["count"])),
//	        Slot(),
//	    )
//	}
//
// Attributes prefixed with "w:" (see Flag) become element flags when the
// tree is rendered as the markup of another custom element.
package el
