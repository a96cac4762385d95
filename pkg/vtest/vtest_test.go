package vtest_test

import (
	"strings"
	"testing"

	"github.com/webcomp-dev/webcomp/pkg/element"
	"github.com/webcomp-dev/webcomp/pkg/vdom"
	"github.com/webcomp-dev/webcomp/pkg/vtest"
)

func TestRenderToString(t *testing.T) {
	node := vdom.H("div", vdom.Props{"class": "container", "hidden": false, "open": true},
		vdom.H("h1", nil, "Hello"),
		vdom.H("p", nil, vdom.Text("World & more")),
	)

	html := vtest.RenderToString(node)

	want := `<div class="container" open><h1>Hello</h1><p>World &amp; more</p></div>`
	if html != want {
		t.Errorf("RenderToString() = %q, want %q", html, want)
	}
}

func TestRenderToString_Components(t *testing.T) {
	greet := vdom.ComponentFunc(func(props vdom.Props) *vdom.VNode {
		return vdom.H("span", nil, vdom.Textf("Hi %v", props["name"]))
	})

	html := vtest.RenderToString(vdom.Fragment(vdom.Comp(greet, vdom.Props{"name": "Ada"})))
	if html != "<span>Hi Ada</span>" {
		t.Errorf("unexpected html %q", html)
	}
}

func TestExpectContains_Pass(t *testing.T) {
	node := vdom.H("div", nil, "Hello World")

	mockT := &testing.T{}
	vtest.ExpectContains(mockT, node, "Hello")

	if mockT.Failed() {
		t.Error("ExpectContains should have passed")
	}
}

func TestExpectNotContains_Pass(t *testing.T) {
	node := vdom.H("div", nil, "Hello World")

	mockT := &testing.T{}
	vtest.ExpectNotContains(mockT, node, "Goodbye")

	if mockT.Failed() {
		t.Error("ExpectNotContains should have passed")
	}
}

func TestHost_HistoryAndTicks(t *testing.T) {
	host := vtest.NewHost("https://example.com/app/")

	host.PushState("/app/users?page=2")
	loc := host.Location()
	if loc.Pathname != "/app/users" || loc.Search != "?page=2" {
		t.Errorf("unexpected location %+v", loc)
	}

	host.ReplaceState("/app/teams")
	if got := host.History(); len(got) != 2 || !strings.HasSuffix(got[1], "/app/teams") {
		t.Errorf("unexpected history %v", got)
	}

	var order []int
	cancelA := host.Schedule(func() { order = append(order, 1) })
	host.Schedule(func() { order = append(order, 2) })
	host.Tick()
	cancelA()
	host.Tick()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 2 {
		t.Errorf("unexpected tick order %v", order)
	}
	if host.Scheduled() != 1 {
		t.Errorf("expected 1 scheduled tick, got %d", host.Scheduled())
	}
}

func TestElement_BatchesMutations(t *testing.T) {
	el := vtest.NewElement("my-counter", "start", "5")

	var batches [][]element.MutationRecord
	stop := el.ObserveAttributes(func(b []element.MutationRecord) {
		batches = append(batches, b)
	})

	el.SetAttribute("start", "6")
	el.RemoveAttribute("missing")
	el.Flush()
	el.Flush() // nothing queued

	if len(batches) != 1 || len(batches[0]) != 2 {
		t.Fatalf("expected one batch of two records, got %v", batches)
	}
	if v, ok := el.Attribute("start"); !ok || v != "6" {
		t.Errorf("start = %q, %v", v, ok)
	}

	stop()
	el.SetAttribute("start", "7")
	el.Flush()
	if len(batches) != 1 {
		t.Error("stopped observer must not receive batches")
	}
}
