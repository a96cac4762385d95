package el

import (
	"strings"

	"github.com/webcomp-dev/webcomp/pkg/element"
)

// AttrOf creates an attribute with any value.
func AttrOf(key string, value any) Attr { return Attr{Key: key, Value: value} }

func ID(id string) Attr { return Attr{Key: "id", Value: id} }

// Class joins the non-empty class names.
func Class(classes ...string) Attr {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return Attr{Key: "class", Value: strings.Join(parts, " ")}
}

// ClassIf adds class only when cond holds.
func ClassIf(cond bool, class string) Attr {
	if !cond {
		return Attr{}
	}
	return Class(class)
}

func StyleAttr(style string) Attr { return Attr{Key: "style", Value: style} }
func Href(href string) Attr       { return Attr{Key: "href", Value: href} }
func Src(src string) Attr         { return Attr{Key: "src", Value: src} }
func Alt(alt string) Attr         { return Attr{Key: "alt", Value: alt} }
func Type(t string) Attr          { return Attr{Key: "type", Value: t} }
func Name(name string) Attr       { return Attr{Key: "name", Value: name} }
func Value(value string) Attr     { return Attr{Key: "value", Value: value} }
func Placeholder(p string) Attr   { return Attr{Key: "placeholder", Value: p} }
func Role(role string) Attr       { return Attr{Key: "role", Value: role} }
func SlotName(name string) Attr   { return Attr{Key: "slot", Value: name} }

func Disabled(disabled bool) Attr { return Attr{Key: "disabled", Value: disabled} }
func Hidden(hidden bool) Attr     { return Attr{Key: "hidden", Value: hidden} }
func Checked(checked bool) Attr   { return Attr{Key: "checked", Value: checked} }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return Attr{Key: "data-" + key, Value: value} }

// AriaLabel creates an aria-label attribute.
func AriaLabel(label string) Attr { return Attr{Key: "aria-label", Value: label} }

// Flag creates a "w:" attribute that sets an element flag.
func Flag(name string, value string) Attr {
	return Attr{Key: element.FlagPrefix + element.CamelToDash(name), Value: value}
}

// Protected marks a nested custom element as protected.
func Protected() Attr { return Flag(element.FlagProtected, "") }

// IgnoreChildren makes a nested custom element drop its original children.
func IgnoreChildren() Attr { return Flag(element.FlagIgnoreChildren, "") }
