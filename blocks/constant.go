package blocks

import (
	"fmt"

	"github.com/birdayz/blockflow/kblock"
)

// Constant publishes the same value every tick. It has no inputs and one
// output of depth 1. When connected to an input, the output takes the name of
// that input.
type Constant[T any] struct {
	*kblock.Node[T, T]
}

// NewConstant creates a constant publishing value. Unless WithName is given,
// the block is named after its value.
func NewConstant[T any](ids kblock.IDAllocator, value T, opts ...kblock.Option) (*Constant[T], error) {
	opts = append([]kblock.Option{kblock.WithName(fmt.Sprintf("%v =>", value))}, opts...)

	n, err := kblock.New[T, T](ids, kblock.Shape{Outputs: kblock.Delays{1}},
		func(n *kblock.Node[T, T], staged []T) ([]T, error) {
			staged[0] = n.Output(0, 0)
			return staged, nil
		},
		opts...,
	)
	if err != nil {
		return nil, err
	}
	n.Out(0).Set(0, value)

	c := &Constant[T]{Node: n}
	n.Adopt(c)
	out := n.Out(0).At(0)
	n.Subscribe(func(ev kblock.Event) {
		if ev.Kind == kblock.Connected && ev.From == kblock.Endpoint(out) {
			out.SetName(ev.To.Name())
		}
	})
	return c, nil
}

// MustConstant is like NewConstant but panics on error.
func MustConstant[T any](ids kblock.IDAllocator, value T, opts ...kblock.Option) *Constant[T] {
	c, err := NewConstant(ids, value, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Value returns the published value.
func (c *Constant[T]) Value() T {
	return c.Output(0, 0)
}

// Set replaces the published value, effective immediately.
func (c *Constant[T]) Set(v T) {
	c.Out(0).Set(0, v)
}

// Port returns the output port.
func (c *Constant[T]) Port() *kblock.Port[T] {
	return c.Out(0).At(0)
}

// Drive connects the output to in.
func (c *Constant[T]) Drive(in *kblock.Port[T]) error {
	return c.Port().Connect(in)
}
