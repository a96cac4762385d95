package vtest

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"testing"

	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// RenderToString renders a VNode to HTML. Components are resolved first;
// props that are not plain values (children, flags, functions) are
// skipped.
//
// Example:
//
//	html := vtest.RenderToString(MyComponent().Render(nil))
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	var b strings.Builder
	writeNode(&b, vdom.Resolve(node))
	return b.String()
}

func writeNode(b *strings.Builder, n *vdom.VNode) {
	if n == nil {
		return
	}
	switch n.Kind {
	case vdom.KindText:
		b.WriteString(html.EscapeString(n.Text))
	case vdom.KindFragment:
		for _, c := range n.Children {
			writeNode(b, c)
		}
	case vdom.KindElement:
		b.WriteString("<" + n.Tag)
		keys := make([]string, 0, len(n.Props))
		for k := range n.Props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch v := n.Props[k].(type) {
			case bool:
				if v {
					b.WriteString(" " + k)
				}
			case string, int, int64, float64:
				fmt.Fprintf(b, ` %s="%s"`, k, html.EscapeString(fmt.Sprint(v)))
			}
		}
		b.WriteString(">")
		for _, c := range n.Children {
			writeNode(b, c)
		}
		b.WriteString("</" + n.Tag + ">")
	}
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, renderer.Last(), "Welcome Admin")
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	out := RenderToString(node)
	if !strings.Contains(out, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(out, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	out := RenderToString(node)
	if strings.Contains(out, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(out, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
//
// Example:
//
//	vtest.ExpectElement(t, renderer.Last(), "button")
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	out := RenderToString(node)
	if !strings.Contains(out, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(out, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	out := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(out, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(out, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
