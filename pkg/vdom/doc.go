// Package vdom provides the virtual DOM model used by webcomp elements.
//
// VNode is the building block for elements, text, fragments and components.
// Component renders a tree from Props. The actual drawing is done by a
// host-supplied Renderer; webcomp only decides what to render and when.
//
// # Mounted instances
//
// Instance wraps a mounted component so its props can be updated without a
// remount:
//
//	inst := vdom.Mount(counter, vdom.Props{"label": "clicks"})
//	inst.OnInvalidate(func(i *vdom.Instance) { renderer.Render(i.Render(), host, nil) })
//	inst.Update(vdom.Props{"count": 5}) // re-renders once
//	inst.Update(vdom.Props{"count": 5}) // no change, no render
package vdom
