// Package element turns components into custom elements.
//
// An Element ties a host node to a component: on connect it converts the
// original markup, mounts the component and renders it through a
// vdom.Renderer; on disconnect it renders vdom.Empty.
//
// # Attributes
//
// Host attributes reach the component through a Bridge:
//
//	<my-counter start="5" label w:protected></my-counter>
//
// gives the props {"start": 5, "label": true} and the flags
// {"protected": true}. Names are camel-cased, empty values become true and
// JSON values are parsed. Attributes with the "w:" prefix set flags, which
// the component receives under the "flags" prop. The name "flags" itself is
// reserved.
//
// The Bridge watches the host for attribute changes and redelivers them to
// the mounted vdom.Instance, which re-renders only when a value changed.
// Elements with the protected flag reject every change.
package element
