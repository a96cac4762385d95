package vdom

import "fmt"

// H creates an element node. Children may be *VNode, []*VNode, string or
// Component values; nil entries are skipped.
func H(tag string, props Props, children ...any) *VNode {
	return &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    props,
		Children: collect(children),
	}
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	return &VNode{
		Kind:     KindFragment,
		Children: collect(children),
	}
}

// Comp creates a component node. Children are passed to the component under
// ChildrenProp.
func Comp(c Component, props Props, children ...any) *VNode {
	kids := collect(children)
	p := props.Clone()
	if len(kids) > 0 {
		p[ChildrenProp] = kids
	}
	return &VNode{
		Kind:     KindComponent,
		Props:    p,
		Children: kids,
		Comp:     c,
	}
}

// ChildrenOf returns the children passed to a component.
func ChildrenOf(props Props) []*VNode {
	kids, _ := props[ChildrenProp].([]*VNode)
	return kids
}

// Resolve renders component nodes recursively, returning a tree made only of
// elements, text and fragments.
func Resolve(n *VNode) *VNode {
	if n == nil {
		return nil
	}
	if n.Kind == KindComponent {
		if n.Comp == nil {
			return nil
		}
		return Resolve(n.Comp.Render(n.Props.Clone()))
	}
	out := *n
	if len(n.Children) > 0 {
		out.Children = make([]*VNode, 0, len(n.Children))
		for _, c := range n.Children {
			if r := Resolve(c); r != nil {
				out.Children = append(out.Children, r)
			}
		}
	}
	return &out
}

func collect(children []any) []*VNode {
	var out []*VNode
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				out = append(out, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					out = append(out, c)
				}
			}
		case string:
			out = append(out, Text(v))
		case Component:
			out = append(out, &VNode{Kind: KindComponent, Props: Props{}, Comp: v})
		}
	}
	return out
}
