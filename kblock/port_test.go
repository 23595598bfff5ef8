package kblock

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestPortConnect(t *testing.T) {
	t.Run("input forwards output value", func(t *testing.T) {
		ids := NewSequence()
		out := NewPort[int](ids, "out", Output)
		in := NewPort[int](ids, "in", Input)
		out.SetValue(7)

		assert.NoError(t, in.Connect(out))
		assert.Equal(t, out, in.ConnectedFrom())
		assert.Equal(t, 7, in.Value())

		out.SetValue(8)
		assert.Equal(t, 8, in.Value())
	})

	t.Run("either side may initiate", func(t *testing.T) {
		ids := NewSequence()
		out := NewPort[int](ids, "out", Output)
		in := NewPort[int](ids, "in", Input)

		assert.NoError(t, out.Connect(in))
		assert.Equal(t, out, in.ConnectedFrom())
		assert.Zero(t, out.ConnectedFrom())
	})

	t.Run("same direction", func(t *testing.T) {
		ids := NewSequence()
		a := NewPort[int](ids, "a", Input)
		b := NewPort[int](ids, "b", Input)
		err := a.Connect(b)
		assert.True(t, errors.Is(err, ErrInvalidWiring))

		c := NewPort[int](ids, "c", Output)
		d := NewPort[int](ids, "d", Output)
		err = c.Connect(d)
		assert.True(t, errors.Is(err, ErrInvalidWiring))
	})

	t.Run("nil peer", func(t *testing.T) {
		in := NewPort[int](NewSequence(), "in", Input)
		assert.True(t, errors.Is(in.Connect(nil), ErrInvalidWiring))
	})

	t.Run("set value does not write through", func(t *testing.T) {
		ids := NewSequence()
		out := NewPort[int](ids, "out", Output)
		in := NewPort[int](ids, "in", Input)
		out.SetValue(1)
		assert.NoError(t, in.Connect(out))

		in.SetValue(99)
		assert.Equal(t, 1, in.Value())
		assert.Equal(t, 1, out.Value())
	})

	t.Run("rewire replaces connection", func(t *testing.T) {
		ids := NewSequence()
		n := MustNew[int, int](ids, Shape{Inputs: Delays{1}}, nil)
		var kinds []EventKind
		n.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

		a := NewPort[int](ids, "a", Output)
		b := NewPort[int](ids, "b", Output)
		a.SetValue(1)
		b.SetValue(2)

		in := n.In(0).At(0)
		assert.NoError(t, in.Connect(a))
		assert.NoError(t, in.Connect(b))
		assert.Equal(t, 2, in.Value())
		assert.Equal(t, []EventKind{Connected, Disconnected, Connected}, kinds)

		// Connecting the same pair again is a no-op.
		assert.NoError(t, in.Connect(b))
		assert.Equal(t, 3, len(kinds))
	})
}

func TestPortDisconnect(t *testing.T) {
	t.Run("keeps last forwarded value", func(t *testing.T) {
		ids := NewSequence()
		out := NewPort[[]int](ids, "out", Output)
		in := NewPort[[]int](ids, "in", Input)
		out.SetValue([]int{1, 2, 3})
		assert.NoError(t, in.Connect(out))
		in.SetIgnoreConnection(true)

		assert.NoError(t, in.Disconnect())
		assert.Zero(t, in.ConnectedFrom())
		assert.False(t, in.IgnoreConnection())
		assert.Equal(t, []int{1, 2, 3}, in.Value())

		// The snapshot does not alias the output.
		out.Value()[0] = 42
		assert.Equal(t, []int{1, 2, 3}, in.Value())
	})

	t.Run("unwired input", func(t *testing.T) {
		in := NewPort[int](NewSequence(), "in", Input)
		in.SetValue(5)
		assert.NoError(t, in.Disconnect())
		assert.Equal(t, 5, in.Value())
	})

	t.Run("output", func(t *testing.T) {
		out := NewPort[int](NewSequence(), "out", Output)
		err := out.Disconnect()
		assert.True(t, errors.Is(err, ErrInvalidOperation))
	})

	t.Run("both sides notify", func(t *testing.T) {
		ids := NewSequence()
		src := MustNew[int, int](ids, Shape{Outputs: Delays{1}}, nil, WithName("src"))
		dst := MustNew[int, int](ids, Shape{Inputs: Delays{1}}, nil, WithName("dst"))

		var srcEvents, dstEvents []Event
		src.Subscribe(func(ev Event) { srcEvents = append(srcEvents, ev) })
		dst.Subscribe(func(ev Event) { dstEvents = append(dstEvents, ev) })

		assert.NoError(t, dst.In(0).At(0).Connect(src.Out(0).At(0)))
		assert.NoError(t, dst.In(0).At(0).Disconnect())

		assert.Equal(t, 2, len(srcEvents))
		assert.Equal(t, 2, len(dstEvents))
		assert.Equal(t, Disconnected, dstEvents[1].Kind)
		assert.Equal(t, Endpoint(src.Out(0).At(0)), dstEvents[1].From)
		assert.Equal(t, Endpoint(dst.In(0).At(0)), dstEvents[1].To)
	})
}

func TestDrivenOutput(t *testing.T) {
	ids := NewSequence()
	inner := NewPort[string](ids, "inner", Output)
	inner.SetValue("x")

	adapter := MustNew[string, string](ids, Shape{Outputs: Delays{2}}, nil, WithDrivenOutputs(0))
	slot := adapter.Out(0).At(0)
	assert.True(t, slot.Driven())
	assert.False(t, adapter.Out(0).At(1).Driven())

	t.Run("plain output drives slot", func(t *testing.T) {
		assert.NoError(t, inner.Connect(slot))
		assert.Equal(t, inner, slot.ConnectedFrom())
		assert.Equal(t, "x", slot.Value())
	})

	t.Run("latch keeps slot 0 and shifts history", func(t *testing.T) {
		assert.NoError(t, adapter.UpdateAndLatch())
		inner.SetValue("y")
		assert.Equal(t, "y", adapter.Output(0, 0))
		assert.Equal(t, "x", adapter.Output(0, 1))
	})

	t.Run("driven slot can be disconnected", func(t *testing.T) {
		assert.NoError(t, slot.Disconnect())
		assert.Equal(t, "y", slot.Value())
	})

	t.Run("driven slots do not pair", func(t *testing.T) {
		other := MustNew[string, string](ids, Shape{Outputs: Delays{1}}, nil, WithDrivenOutputs(0))
		err := slot.Connect(other.Out(0).At(0))
		assert.True(t, errors.Is(err, ErrInvalidWiring))
	})
}
