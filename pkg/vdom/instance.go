package vdom

import (
	"reflect"
	"sort"
	"sync"
)

// Instance is a mounted component whose props can be updated in place.
//
// An instance keeps the props it was mounted with and a separate set of
// state props layered on top of them. Update merges into the state props and
// asks for a re-render only when a value actually changed; the component is
// never remounted.
type Instance struct {
	mu           sync.Mutex
	comp         Component
	base         Props
	state        Props
	onInvalidate func(*Instance)
	renders      int
}

// Mount creates an instance of comp with the given base props.
func Mount(comp Component, base Props) *Instance {
	return &Instance{
		comp:  comp,
		base:  base.Clone(),
		state: Props{},
	}
}

// Component returns the mounted component.
func (i *Instance) Component() Component {
	return i.comp
}

// OnInvalidate sets the callback invoked after an update changed the props.
func (i *Instance) OnInvalidate(fn func(*Instance)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onInvalidate = fn
}

// Update merges next into the state props. It returns the sorted keys whose
// values changed; the invalidate callback runs only when that list is
// non-empty.
func (i *Instance) Update(next Props) []string {
	i.mu.Lock()
	var changed []string
	for k, v := range next {
		if old, ok := i.state[k]; ok && reflect.DeepEqual(old, v) {
			continue
		}
		if _, ok := i.state[k]; !ok {
			if old, inBase := i.base[k]; inBase && reflect.DeepEqual(old, v) {
				continue
			}
		}
		i.state[k] = v
		changed = append(changed, k)
	}
	cb := i.onInvalidate
	i.mu.Unlock()

	if len(changed) == 0 {
		return nil
	}
	sort.Strings(changed)
	if cb != nil {
		cb(i)
	}
	return changed
}

// Invalidate runs the invalidate callback without changing props.
func (i *Instance) Invalidate() {
	i.mu.Lock()
	cb := i.onInvalidate
	i.mu.Unlock()
	if cb != nil {
		cb(i)
	}
}

// Attach calls Mount on a Mountable component, wiring its re-render
// requests to Invalidate. Other components are left alone.
func (i *Instance) Attach() error {
	if m, ok := i.comp.(Mountable); ok {
		return m.Mount(i.Invalidate)
	}
	return nil
}

// Detach calls Unmount on a Mountable component.
func (i *Instance) Detach() {
	if m, ok := i.comp.(Mountable); ok {
		m.Unmount()
	}
}

// Props returns the effective props: base props overlaid with state props.
func (i *Instance) Props() Props {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.base.Merge(i.state)
}

// Render renders the component with its effective props.
func (i *Instance) Render() *VNode {
	i.mu.Lock()
	i.renders++
	props := i.base.Merge(i.state)
	i.mu.Unlock()
	return i.comp.Render(props)
}

// Renders returns how many times the instance has rendered.
func (i *Instance) Renders() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.renders
}
