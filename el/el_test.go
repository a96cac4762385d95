package el_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/webcomp-dev/webcomp/el"
	"github.com/webcomp-dev/webcomp/pkg/element"
	"github.com/webcomp-dev/webcomp/pkg/vdom"
	"github.com/webcomp-dev/webcomp/pkg/vtest"
)

func TestElementArguments(t *testing.T) {
	n := Div(
		ID("root"),
		Class("one", " ", "two"),
		ClassIf(true, "three"),
		ClassIf(false, "four"),
		nil,
		Props{"title": "t"},
		[]Attr{Data("count", "5"), Hidden(false)},
		"hello",
		Span("child"),
		If(false, Span("hidden")),
	)

	require.Equal(t, vdom.KindElement, n.Kind)
	assert.Equal(t, "div", n.Tag)
	assert.Equal(t, "one two three", n.Props["class"])
	assert.Equal(t, "root", n.Props["id"])
	assert.Equal(t, "t", n.Props["title"])
	assert.Equal(t, "5", n.Props["data-count"])
	require.Len(t, n.Children, 2)
	assert.Equal(t, `<div class="one two three" data-count="5" id="root" title="t">hello<span>child</span></div>`,
		vtest.RenderToString(n))
}

func TestFlags(t *testing.T) {
	n := Custom("my-counter", Protected(), IgnoreChildren(), Flag("theme", "dark"))
	assert.Equal(t, "", n.Props["w:protected"])
	assert.Equal(t, "", n.Props["w:ignore-children"])
	assert.Equal(t, "dark", n.Props["w:theme"])

	e, err := element.Coerce("w:ignore-children", "")
	require.NoError(t, err)
	assert.Equal(t, element.FlagIgnoreChildren, e.Name)
}

func TestHelpers(t *testing.T) {
	items := []string{"a", "b", "c"}
	list := Ul(Range(items, func(item string, i int) *VNode {
		if i == 1 {
			return nil
		}
		return Li(Textf("%d:%s", i, item))
	}))
	assert.Equal(t, "<ul><li>0:a</li><li>2:c</li></ul>", vtest.RenderToString(list))

	assert.Len(t, Repeat(3, func(int) *VNode { return Br() }), 3)
	assert.Nil(t, When(false, func() *VNode { t.Fatal("called"); return nil }))
	assert.Equal(t, "yes", IfElse(true, Text("yes"), Text("no")).Text)
	assert.Equal(t, vdom.KindFragment, Fragment(Text("a"), "b").Kind)
}

func TestComp(t *testing.T) {
	greet := vdom.ComponentFunc(func(props vdom.Props) *vdom.VNode {
		return P(Textf("hi %v", props["name"]), vdom.ChildrenOf(props))
	})
	n := Comp(greet, AttrOf("name", "Ada"), Em("!"))
	assert.Equal(t, "<p>hi Ada<em>!</em></p>", vtest.RenderToString(n))
}

func TestIsVoidElement(t *testing.T) {
	assert.True(t, IsVoidElement("img"))
	assert.True(t, IsVoidElement("BR"))
	assert.False(t, IsVoidElement("div"))
	assert.False(t, IsVoidElement("my-counter"))
}
