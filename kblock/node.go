package kblock

import (
	"fmt"
	"slices"

	"github.com/go-logr/logr"
)

// Runner is the capability set of a collection member.
type Runner interface {
	ID() ID
	Name() string
	// Update consumes the current inputs and computes, but does not
	// publish, the next outputs.
	Update() error
	// LatchOutputs publishes the outputs computed by the last Update.
	LatchOutputs() error
	UpdateAndLatch() error
}

// Block is a Runner with inspectable ports.
type Block interface {
	Runner
	Observable
	InputGroups() [][]Endpoint
	OutputGroups() [][]Endpoint
}

// TransferFunc computes the next outputs of n. staged holds the outputs of the
// previous Update and may be modified and returned. The result must contain
// exactly one value per output group.
type TransferFunc[I, O any] func(n *Node[I, O], staged []O) ([]O, error)

// Node is a block with delayed inputs of type I and delayed outputs of type O.
type Node[I, O any] struct {
	id   ID
	name string
	log  logr.Logger

	inputs  []*Group[I]
	outputs []*Group[O]

	// current holds the inputs consumed by the last Update, staged the
	// outputs waiting for the next LatchOutputs.
	current []I
	staged  []O

	transfer TransferFunc[I, O]

	updates uint64
	latches uint64

	observers Observers
}

// New creates a node with the given shape. A nil transfer function keeps the
// staged outputs unchanged.
func New[I, O any](ids IDAllocator, shape Shape, fn TransferFunc[I, O], opts ...Option) (*Node[I, O], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	cfg := nodeOptions{log: logr.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}

	driven := make([]bool, len(shape.Outputs))
	for _, g := range cfg.driven {
		if g < 0 || g >= len(shape.Outputs) {
			return nil, fmt.Errorf("%w: driven output %d, node has %d outputs", ErrConstructionRange, g, len(shape.Outputs))
		}
		driven[g] = true
	}

	if fn == nil {
		fn = func(_ *Node[I, O], staged []O) ([]O, error) { return staged, nil }
	}

	n := &Node[I, O]{
		id:       ids.Next(),
		name:     cfg.name,
		transfer: fn,
		current:  make([]I, len(shape.Inputs)),
		staged:   make([]O, len(shape.Outputs)),
	}
	if n.name == "" {
		n.name = fmt.Sprintf("Node_%d", n.id)
	}
	n.log = cfg.log.WithValues("node", n.name)

	n.inputs = make([]*Group[I], len(shape.Inputs))
	for i, depth := range shape.Inputs {
		n.inputs[i] = newGroup[I](ids, Input, depth, fmt.Sprintf("i%d", i), false, n, n.emit)
	}
	n.outputs = make([]*Group[O], len(shape.Outputs))
	for i, depth := range shape.Outputs {
		n.outputs[i] = newGroup[O](ids, Output, depth, fmt.Sprintf("o%d", i), driven[i], n, n.emit)
	}

	return n, nil
}

// MustNew is like New but panics on error.
func MustNew[I, O any](ids IDAllocator, shape Shape, fn TransferFunc[I, O], opts ...Option) *Node[I, O] {
	n, err := New(ids, shape, fn, opts...)
	must(err)
	return n
}

func (n *Node[I, O]) ID() ID              { return n.id }
func (n *Node[I, O]) Name() string        { return n.name }
func (n *Node[I, O]) SetName(name string) { n.name = name }

// Update shifts the input history, consumes the current inputs and runs the
// transfer. A failed Update leaves inputs, history and staged outputs as they
// were, so it may be retried.
func (n *Node[I, O]) Update() error {
	current := slices.Clone(n.current)
	history := make([][]I, len(n.inputs))
	for i, g := range n.inputs {
		history[i] = g.storage()
	}

	if n.updates != 0 {
		for i, g := range n.inputs {
			g.shiftAndSet(n.current[i])
		}
	}
	for i, g := range n.inputs {
		n.current[i] = g.slots[0].CloneValue()
	}

	rollback := func() {
		n.current = current
		for i, g := range n.inputs {
			g.restore(history[i])
		}
	}

	next, err := n.transfer(n, slices.Clone(n.staged))
	if err != nil {
		rollback()
		return fmt.Errorf("node %s: transfer: %w", n.name, err)
	}
	if len(next) != len(n.outputs) {
		rollback()
		return fmt.Errorf("%w: node %s returned %d outputs, has %d", ErrOutputShape, n.name, len(next), len(n.outputs))
	}

	n.staged = next
	n.updates++
	return nil
}

func (n *Node[I, O]) LatchOutputs() error {
	for i, g := range n.outputs {
		g.push(n.staged[i], !g.driven)
	}
	n.latches++
	return nil
}

func (n *Node[I, O]) UpdateAndLatch() error {
	if err := n.Update(); err != nil {
		return err
	}
	return n.LatchOutputs()
}

// Input returns the value of input group i consumed by the last Update.
func (n *Node[I, O]) Input(i int) I {
	return n.current[i]
}

// InputAt returns slot k of input group i.
func (n *Node[I, O]) InputAt(i, k int) I {
	return n.inputs[i].Value(k)
}

// Output returns slot k of output group i.
func (n *Node[I, O]) Output(i, k int) O {
	return n.outputs[i].Value(k)
}

// Staged returns the value computed for output group i by the last Update.
func (n *Node[I, O]) Staged(i int) O {
	return n.staged[i]
}

func (n *Node[I, O]) In(i int) *Group[I]  { return n.inputs[i] }
func (n *Node[I, O]) Out(i int) *Group[O] { return n.outputs[i] }

func (n *Node[I, O]) Inputs() []*Group[I]  { return slices.Clone(n.inputs) }
func (n *Node[I, O]) Outputs() []*Group[O] { return slices.Clone(n.outputs) }

func (n *Node[I, O]) Shape() Shape {
	s := Shape{
		Inputs:  make(Delays, len(n.inputs)),
		Outputs: make(Delays, len(n.outputs)),
	}
	for i, g := range n.inputs {
		s.Inputs[i] = g.Depth()
	}
	for i, g := range n.outputs {
		s.Outputs[i] = g.Depth()
	}
	return s
}

// Adopt makes b the owner reported by every port of n. Types embedding a
// Node call it, so that dependency extraction resolves ports to the
// embedding value that was added to a collection.
func (n *Node[I, O]) Adopt(b Block) {
	for _, g := range n.inputs {
		for _, p := range g.slots {
			p.owner = b
		}
	}
	for _, g := range n.outputs {
		for _, p := range g.slots {
			p.owner = b
		}
	}
}

func (n *Node[I, O]) UpdateCount() uint64 { return n.updates }
func (n *Node[I, O]) LatchCount() uint64  { return n.latches }

func (n *Node[I, O]) InputGroups() [][]Endpoint {
	groups := make([][]Endpoint, len(n.inputs))
	for i, g := range n.inputs {
		groups[i] = g.Endpoints()
	}
	return groups
}

func (n *Node[I, O]) OutputGroups() [][]Endpoint {
	groups := make([][]Endpoint, len(n.outputs))
	for i, g := range n.outputs {
		groups[i] = g.Endpoints()
	}
	return groups
}

func (n *Node[I, O]) Subscribe(fn func(Event)) func() {
	return n.observers.Subscribe(fn)
}

func (n *Node[I, O]) emit(ev Event) {
	n.log.V(1).Info("wiring changed", "event", ev.Kind, "from", ev.From.Name(), "to", ev.To.Name())
	n.observers.Emit(ev)
}

func (n *Node[I, O]) String() string {
	return n.name
}
