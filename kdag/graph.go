package kdag

import (
	"fmt"

	"github.com/birdayz/blockflow/kblock"
)

// NodeID is the position of a node in insertion order.
type NodeID int

// Node is one schedulable member and its dependency edges.
type Node struct {
	ID     NodeID
	Member kblock.Runner

	// Parent edges: nodes that must run before this one.
	Parents []NodeID

	// Child edges: nodes that read from this one.
	Children []NodeID
}

func (n *Node) String() string {
	return n.Member.Name()
}

// Graph is the dependency graph of a set of members.
// It contains only structural information - no runtime behavior.
type Graph struct {
	// Nodes in insertion order, Nodes[i].ID == i.
	Nodes []*Node

	index map[kblock.Runner]NodeID
	edges map[[2]NodeID]struct{}
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make([]*Node, 0),
		index: make(map[kblock.Runner]NodeID),
		edges: make(map[[2]NodeID]struct{}),
	}
}

// AddNode adds a member to the graph. Members are identified by identity.
func (g *Graph) AddNode(m kblock.Runner) (NodeID, error) {
	if m == nil {
		return 0, fmt.Errorf("%w: nil member", ErrInvalidTopology)
	}
	if id, exists := g.index[m]; exists {
		return id, fmt.Errorf("%w: %s", ErrNodeAlreadyExists, m.Name())
	}

	id := NodeID(len(g.Nodes))
	g.Nodes = append(g.Nodes, &Node{
		ID:       id,
		Member:   m,
		Parents:  []NodeID{},
		Children: []NodeID{},
	})
	g.index[m] = id
	return id, nil
}

// Lookup returns the node of m.
func (g *Graph) Lookup(m kblock.Runner) (*Node, bool) {
	id, ok := g.index[m]
	if !ok {
		return nil, false
	}
	return g.Nodes[id], true
}

// AddEdge records that child reads from parent. Self edges and duplicate
// edges are dropped; the returned bool tells whether an edge was added.
func (g *Graph) AddEdge(parentID, childID NodeID) (bool, error) {
	if !g.has(parentID) {
		return false, fmt.Errorf("%w: parent %d", ErrNodeNotFound, parentID)
	}
	if !g.has(childID) {
		return false, fmt.Errorf("%w: child %d", ErrNodeNotFound, childID)
	}
	if parentID == childID {
		return false, nil
	}

	key := [2]NodeID{parentID, childID}
	if _, exists := g.edges[key]; exists {
		return false, nil
	}
	g.edges[key] = struct{}{}

	g.Nodes[parentID].Children = append(g.Nodes[parentID].Children, childID)
	g.Nodes[childID].Parents = append(g.Nodes[childID].Parents, parentID)
	return true, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of distinct dependency edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

func (g *Graph) has(id NodeID) bool {
	return id >= 0 && int(id) < len(g.Nodes)
}

func (g *Graph) members(ids []NodeID) []kblock.Runner {
	out := make([]kblock.Runner, len(ids))
	for i, id := range ids {
		out[i] = g.Nodes[id].Member
	}
	return out
}
