package blocks

import "github.com/birdayz/blockflow/kblock"

// Source publishes fn(tick) every tick, where tick is the number of updates
// before the current one. The output starts with fn(0).
type Source[T any] struct {
	*kblock.Node[T, T]
}

func NewSource[T any](ids kblock.IDAllocator, fn func(tick uint64) T, opts ...kblock.Option) (*Source[T], error) {
	n, err := kblock.New[T, T](ids, kblock.Shape{Outputs: kblock.Delays{1}},
		func(n *kblock.Node[T, T], staged []T) ([]T, error) {
			staged[0] = fn(n.UpdateCount())
			return staged, nil
		},
		opts...,
	)
	if err != nil {
		return nil, err
	}
	n.Out(0).Set(0, fn(0))
	s := &Source[T]{Node: n}
	n.Adopt(s)
	return s, nil
}

func (s *Source[T]) Port() *kblock.Port[T] {
	return s.Out(0).At(0)
}

// Sink calls fn with the consumed input on every Update.
type Sink[T any] struct {
	*kblock.Node[T, T]
}

func NewSink[T any](ids kblock.IDAllocator, fn func(v T) error, opts ...kblock.Option) (*Sink[T], error) {
	n, err := kblock.New[T, T](ids, kblock.Shape{Inputs: kblock.Delays{1}},
		func(n *kblock.Node[T, T], staged []T) ([]T, error) {
			return staged, fn(n.Input(0))
		},
		opts...,
	)
	if err != nil {
		return nil, err
	}
	s := &Sink[T]{Node: n}
	n.Adopt(s)
	return s, nil
}

func (s *Sink[T]) Port() *kblock.Port[T] {
	return s.In(0).At(0)
}
