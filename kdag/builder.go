package kdag

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/birdayz/blockflow/kblock"
)

// Builder constructs the dependency graph of a set of members from their port
// connections.
//
// IMPORTANT: Builder is NOT safe for concurrent use, and the wiring of the
// members must not change while Build runs. The resulting DAG is immutable
// and safe to use concurrently.
type Builder struct {
	graph *Graph
	log   logr.Logger
}

// NewBuilder creates a new DAG builder.
func NewBuilder(log logr.Logger) *Builder {
	return &Builder{
		graph: NewGraph(),
		log:   log,
	}
}

// Add registers members in order. Each member may be added once.
func (b *Builder) Add(members ...kblock.Runner) error {
	for _, m := range members {
		if _, err := b.graph.AddNode(m); err != nil {
			return err
		}
	}
	return nil
}

// MustAdd is like Add but panics on error.
func (b *Builder) MustAdd(members ...kblock.Runner) {
	must(b.Add(members...))
}

// Build extracts dependency edges and partitions the members into ranks.
//
// A member depends on another one if one of its input slots, or one of its
// driven output slots, reads from a port owned by the other member. Ports
// flagged with IgnoreConnection, self references and connections to ports
// outside the graph do not create edges. Members that are not a kblock.Block
// have no visible ports and therefore no edges.
//
// Cycles do not fail the build; see DAG.Forced.
func (b *Builder) Build() (*DAG, error) {
	if err := b.extractEdges(); err != nil {
		return nil, err
	}

	ranks, forced := b.graph.ranks()
	for _, id := range forced {
		b.log.Info("Dependency cycle broken", "member", b.graph.Nodes[id].Member.Name())
	}
	b.log.V(1).Info("Built execution ranks", "members", b.graph.Len(), "edges", b.graph.EdgeCount(), "ranks", len(ranks))

	return &DAG{
		graph:  b.graph,
		ranks:  ranks,
		forced: forced,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *DAG {
	dag, err := b.Build()
	if err != nil {
		panic(err)
	}
	return dag
}

// GetGraph returns the underlying graph for read-only access.
func (b *Builder) GetGraph() *Graph {
	return b.graph
}

func (b *Builder) extractEdges() error {
	for _, node := range b.graph.Nodes {
		block, ok := node.Member.(kblock.Block)
		if !ok {
			continue
		}

		for _, group := range block.InputGroups() {
			for _, ep := range group {
				if err := b.addDependency(node.ID, ep); err != nil {
					return err
				}
			}
		}
		for _, group := range block.OutputGroups() {
			for _, ep := range group {
				if !ep.Driven() {
					continue
				}
				if err := b.addDependency(node.ID, ep); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (b *Builder) addDependency(child NodeID, ep kblock.Endpoint) error {
	if ep.IgnoreConnection() {
		return nil
	}
	up := ep.Upstream()
	if up == nil {
		return nil
	}
	owner := up.Owner()
	if owner == nil {
		return nil
	}
	parent, ok := b.graph.Lookup(owner)
	if !ok {
		return nil
	}
	if _, err := b.graph.AddEdge(parent.ID, child); err != nil {
		return fmt.Errorf("port %s: %w", ep.Name(), err)
	}
	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Sentinel errors for common failure cases.
var (
	ErrNodeAlreadyExists = errors.New("node already exists")
	ErrNodeNotFound      = errors.New("node not found")
	ErrCycleDetected     = errors.New("cycle detected in DAG")
	ErrInvalidTopology   = errors.New("invalid topology")
)
