package element

import (
	"strings"

	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// Convert turns a host subtree into a vdom tree. Text nodes become text,
// elements keep their raw attributes as props, and other node types are
// dropped. Script elements are dropped unless allowScripts is set.
func Convert(n Node, allowScripts bool) *vdom.VNode {
	switch n.NodeType() {
	case TextNode:
		return vdom.Text(n.NodeValue())
	case ElementNode:
	default:
		return nil
	}

	tag := strings.ToLower(n.NodeName())
	if tag == "script" && !allowScripts {
		return nil
	}

	var props vdom.Props
	if attrs := n.Attributes(); len(attrs) > 0 {
		props = make(vdom.Props, len(attrs))
		for _, a := range attrs {
			props[a.Name] = a.Value
		}
	}
	return vdom.H(tag, props, convertChildren(n, allowScripts))
}

func convertChildren(n Node, allowScripts bool) []*vdom.VNode {
	nodes := n.ChildNodes()
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*vdom.VNode, 0, len(nodes))
	for _, c := range nodes {
		if v := Convert(c, allowScripts); v != nil {
			out = append(out, v)
		}
	}
	return out
}
