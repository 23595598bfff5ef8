package kdag

import (
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/birdayz/blockflow/kblock"
)

// newTestNode creates a pass-through node with the given number of inputs and
// one output.
func newTestNode(ids kblock.IDAllocator, name string, inputs int) *kblock.Node[int, int] {
	shape := kblock.Shape{Outputs: kblock.Delays{1}}
	if inputs > 0 {
		shape.Inputs = kblock.MustUniform(inputs, 1)
	}
	return kblock.MustNew[int, int](ids, shape, nil, kblock.WithName(name))
}

// wire connects input i of dst to the output of src.
func wire(t testing.TB, src, dst *kblock.Node[int, int], i int) {
	t.Helper()
	assert.NoError(t, dst.In(i).At(0).Connect(src.Out(0).At(0)))
}

// chain builds n nodes where node i reads from node i-1.
func chain(t testing.TB, ids kblock.IDAllocator, n int) []*kblock.Node[int, int] {
	t.Helper()
	nodes := make([]*kblock.Node[int, int], n)
	for i := range nodes {
		nodes[i] = newTestNode(ids, fmt.Sprintf("node-%d", i), 1)
		if i > 0 {
			wire(t, nodes[i-1], nodes[i], 0)
		}
	}
	return nodes
}

func runners[T kblock.Runner](nodes ...T) []kblock.Runner {
	out := make([]kblock.Runner, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

func names(rank []kblock.Runner) []string {
	out := make([]string, len(rank))
	for i, m := range rank {
		out[i] = m.Name()
	}
	return out
}

func rankNames(ranks [][]kblock.Runner) [][]string {
	out := make([][]string, len(ranks))
	for i, r := range ranks {
		out[i] = names(r)
	}
	return out
}

// opaque is a member without ports.
type opaque struct {
	name string
}

func (o *opaque) ID() kblock.ID         { return 0 }
func (o *opaque) Name() string          { return o.name }
func (o *opaque) Update() error         { return nil }
func (o *opaque) LatchOutputs() error   { return nil }
func (o *opaque) UpdateAndLatch() error { return nil }
