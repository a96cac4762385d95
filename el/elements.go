package el

import (
	"strings"

	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// Element creates an element node. Arguments may be:
//   - nil, ignored (allows conditional attributes)
//   - Attr or []Attr, set as attributes; "class" values accumulate
//   - Props, merged into the attributes
//   - *VNode, []*VNode, string or Component, appended as children
func Element(tag string, args ...any) *VNode {
	props := Props{}
	children := make([]any, 0, len(args))

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			setAttr(props, v)
		case []Attr:
			for _, a := range v {
				setAttr(props, a)
			}
		case Props:
			for k, val := range v {
				setAttr(props, Attr{Key: k, Value: val})
			}
		default:
			children = append(children, v)
		}
	}
	return vdom.H(tag, props, children...)
}

func setAttr(props Props, a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "class" {
		if prev, ok := props["class"].(string); ok && prev != "" {
			if next, ok := a.Value.(string); ok && next != "" {
				props["class"] = prev + " " + next
				return
			}
		}
	}
	props[a.Key] = a.Value
}

// voidElements have no closing tag and no children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether tag is a void HTML element.
func IsVoidElement(tag string) bool {
	return voidElements[strings.ToLower(tag)]
}

// Document structure
func Header(args ...any) *VNode  { return Element("header", args...) }
func Footer(args ...any) *VNode  { return Element("footer", args...) }
func Main(args ...any) *VNode    { return Element("main", args...) }
func Nav(args ...any) *VNode     { return Element("nav", args...) }
func Section(args ...any) *VNode { return Element("section", args...) }
func Article(args ...any) *VNode { return Element("article", args...) }
func Aside(args ...any) *VNode   { return Element("aside", args...) }
func H1(args ...any) *VNode      { return Element("h1", args...) }
func H2(args ...any) *VNode      { return Element("h2", args...) }
func H3(args ...any) *VNode      { return Element("h3", args...) }

// Content
func Div(args ...any) *VNode    { return Element("div", args...) }
func P(args ...any) *VNode      { return Element("p", args...) }
func Span(args ...any) *VNode   { return Element("span", args...) }
func A(args ...any) *VNode      { return Element("a", args...) }
func Strong(args ...any) *VNode { return Element("strong", args...) }
func Em(args ...any) *VNode     { return Element("em", args...) }
func Code(args ...any) *VNode   { return Element("code", args...) }
func Pre(args ...any) *VNode    { return Element("pre", args...) }
func Ul(args ...any) *VNode     { return Element("ul", args...) }
func Ol(args ...any) *VNode     { return Element("ol", args...) }
func Li(args ...any) *VNode     { return Element("li", args...) }
func Img(args ...any) *VNode    { return Element("img", args...) }
func Br() *VNode                { return Element("br") }
func Hr() *VNode                { return Element("hr") }

// Tables
func Table(args ...any) *VNode { return Element("table", args...) }
func Thead(args ...any) *VNode { return Element("thead", args...) }
func Tbody(args ...any) *VNode { return Element("tbody", args...) }
func Tr(args ...any) *VNode    { return Element("tr", args...) }
func Th(args ...any) *VNode    { return Element("th", args...) }
func Td(args ...any) *VNode    { return Element("td", args...) }

// Forms
func Form(args ...any) *VNode     { return Element("form", args...) }
func Label(args ...any) *VNode    { return Element("label", args...) }
func Input(args ...any) *VNode    { return Element("input", args...) }
func Textarea(args ...any) *VNode { return Element("textarea", args...) }
func Button(args ...any) *VNode   { return Element("button", args...) }
func Select(args ...any) *VNode   { return Element("select", args...) }
func Option(args ...any) *VNode   { return Element("option", args...) }

// Custom elements
func Slot(args ...any) *VNode     { return Element("slot", args...) }
func Template(args ...any) *VNode { return Element("template", args...) }
func Style(args ...any) *VNode    { return Element("style", args...) }

// Custom creates an element of a custom element tag.
func Custom(tag string, args ...any) *VNode { return Element(tag, args...) }
