package vtest

import (
	"sync"

	"github.com/webcomp-dev/webcomp/pkg/vdom"
)

// RenderCall is one recorded Render invocation.
type RenderCall struct {
	Tree      *vdom.VNode
	Container any
	Anchor    any
}

// Renderer is a vdom.Renderer that records every call. Component nodes are
// resolved before recording.
type Renderer struct {
	mu    sync.Mutex
	calls []RenderCall

	// Err is returned from every Render call when set.
	Err error
}

var _ vdom.Renderer = (*Renderer)(nil)

// Render implements vdom.Renderer.
func (r *Renderer) Render(tree *vdom.VNode, container, anchor any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tree != vdom.Empty {
		tree = vdom.Resolve(tree)
	}
	r.calls = append(r.calls, RenderCall{Tree: tree, Container: container, Anchor: anchor})
	return r.Err
}

// Calls returns the recorded calls.
func (r *Renderer) Calls() []RenderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RenderCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns the number of recorded calls.
func (r *Renderer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Last returns the most recently rendered tree, or nil.
func (r *Renderer) Last() *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1].Tree
}
