// Package context shares named values between components that do not
// share a parent.
//
// Values live in a Store. Every change is broadcast as UpdateEvent on the
// store's event bus, so every Provider re-renders with the new value.
//
// Usage:
//
//	// Provide a value named "theme", "light" unless already set
//	themed := context.With(nil, "theme", "light", ThemeSwitch)
//
//	// Consume it
//	var ThemeSwitch = vdom.ComponentFunc(func(props vdom.Props) *vdom.VNode {
//	    theme := props[context.Prop].(context.Value)
//	    return vdom.H("button", vdom.Props{"class": theme.Current}, "Toggle")
//	})
//
// Calling theme.Set("dark") updates every provider of "theme".
package context
