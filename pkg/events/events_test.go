package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnAndTrigger(t *testing.T) {
	bus := NewBus()

	var got []Event
	off, err := bus.On(func(e Event) { got = append(got, e) }, "a", "b")
	require.NoError(t, err)

	bus.Trigger("a", 1, "Sender")
	bus.Trigger("b", 2, "")
	bus.Trigger("c", 3, "")

	assert.Equal(t, []Event{
		{Name: "a", Payload: 1, Sender: "Sender"},
		{Name: "b", Payload: 2},
	}, got)

	off()
	off()
	bus.Trigger("a", 4, "")
	assert.Len(t, got, 2)
	assert.Zero(t, bus.Subscribers("a"))
}

func TestOnValidates(t *testing.T) {
	bus := NewBus()

	_, err := bus.On(func(Event) {})
	assert.ErrorIs(t, err, ErrNoNames)

	_, err = bus.On(nil, "a")
	assert.Error(t, err)
}

func TestTriggerDuringHandlerSubscription(t *testing.T) {
	bus := NewBus()

	calls := 0
	_, err := bus.On(func(Event) {
		calls++
		_, _ = bus.On(func(Event) { calls += 10 }, "x")
	}, "x")
	require.NoError(t, err)

	bus.Trigger("x", nil, "")
	assert.Equal(t, 1, calls, "handlers added during a trigger wait for the next one")
}

func TestTriggerAsync(t *testing.T) {
	bus := NewBus()

	received := make(chan Event, 1)
	_, err := bus.On(func(e Event) { received <- e }, "loaded")
	require.NoError(t, err)

	done := bus.TriggerAsync(context.Background(), "loaded", "Loader", func(context.Context) (any, error) {
		return "payload", nil
	})
	require.NoError(t, <-done)

	select {
	case e := <-received:
		assert.Equal(t, Event{Name: "loaded", Payload: "payload", Sender: "Loader"}, e)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestTriggerAsyncErrors(t *testing.T) {
	bus := NewBus()

	fired := false
	_, err := bus.On(func(Event) { fired = true }, "loaded")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = <-bus.TriggerAsync(context.Background(), "loaded", "", func(context.Context) (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = <-bus.TriggerAsync(ctx, "loaded", "", func(context.Context) (any, error) {
		return "late", nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, fired)
}

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())
}
