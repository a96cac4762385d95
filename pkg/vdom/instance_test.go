package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstanceUpdateInvalidatesOnChange(t *testing.T) {
	var seen []Props
	comp := ComponentFunc(func(props Props) *VNode {
		seen = append(seen, props)
		return Text("ok")
	})

	inst := Mount(comp, Props{"label": "clicks"})
	invalidations := 0
	inst.OnInvalidate(func(i *Instance) {
		invalidations++
		i.Render()
	})

	changed := inst.Update(Props{"count": 5})
	assert.Equal(t, []string{"count"}, changed)
	assert.Equal(t, 1, invalidations)

	// Same value again: nothing changes.
	assert.Nil(t, inst.Update(Props{"count": 5}))
	assert.Equal(t, 1, invalidations)

	// Matching the base value is not a change either.
	assert.Nil(t, inst.Update(Props{"label": "clicks"}))
	assert.Equal(t, 1, invalidations)

	changed = inst.Update(Props{"count": 6, "label": "taps", "unchanged": nil})
	assert.Equal(t, []string{"count", "label", "unchanged"}, changed)
	assert.Equal(t, 2, invalidations)

	assert.Equal(t, 2, inst.Renders())
	assert.Equal(t, Props{"label": "taps", "count": 6, "unchanged": nil}, seen[len(seen)-1])
}

func TestInstanceDeepEqualValues(t *testing.T) {
	inst := Mount(ComponentFunc(func(Props) *VNode { return nil }), nil)

	assert.NotNil(t, inst.Update(Props{"items": []any{1.0, 2.0}}))
	assert.Nil(t, inst.Update(Props{"items": []any{1.0, 2.0}}))
	assert.Equal(t, Props{"items": []any{1.0, 2.0}}, inst.Props())
}

func TestInstanceComponent(t *testing.T) {
	comp := ComponentFunc(func(Props) *VNode { return nil })
	inst := Mount(comp, nil)
	assert.NotNil(t, inst.Component())
	assert.Equal(t, 0, inst.Renders())
}

type mountCounter struct {
	mounted, unmounted int
	invalidate         func()
}

func (m *mountCounter) Render(Props) *VNode { return Text("m") }

func (m *mountCounter) Mount(invalidate func()) error {
	m.mounted++
	m.invalidate = invalidate
	return nil
}

func (m *mountCounter) Unmount() { m.unmounted++ }

func TestInstanceAttachWiresInvalidate(t *testing.T) {
	comp := &mountCounter{}
	inst := Mount(comp, nil)

	renders := 0
	inst.OnInvalidate(func(i *Instance) {
		renders++
	})

	assert.NoError(t, inst.Attach())
	assert.Equal(t, 1, comp.mounted)

	comp.invalidate()
	assert.Equal(t, 1, renders)

	inst.Detach()
	assert.Equal(t, 1, comp.unmounted)

	// Plain components ignore attach and detach.
	plain := Mount(ComponentFunc(func(Props) *VNode { return nil }), nil)
	assert.NoError(t, plain.Attach())
	plain.Detach()
}
