package kdag

import "github.com/birdayz/blockflow/kblock"

// DAG is a built dependency graph with its execution ranks.
type DAG struct {
	graph  *Graph
	ranks  [][]NodeID
	forced []NodeID
}

// Ranks returns the members partitioned into ranks. Members of one rank do
// not depend on each other; every member runs after all members it depends
// on, unless the dependency is part of a cycle.
func (d *DAG) Ranks() [][]kblock.Runner {
	out := make([][]kblock.Runner, len(d.ranks))
	for i, rank := range d.ranks {
		out[i] = d.graph.members(rank)
	}
	return out
}

// Order returns all members in execution order.
func (d *DAG) Order() []kblock.Runner {
	out := make([]kblock.Runner, 0, d.graph.Len())
	for _, rank := range d.ranks {
		out = append(out, d.graph.members(rank)...)
	}
	return out
}

// Forced returns the members that were scheduled before some of their
// dependencies to break a cycle, in the order they were forced.
func (d *DAG) Forced() []kblock.Runner {
	return d.graph.members(d.forced)
}

// GetGraph returns the underlying graph.
func (d *DAG) GetGraph() *Graph {
	return d.graph
}
