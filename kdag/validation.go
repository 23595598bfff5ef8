package kdag

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Validate reports dependency cycles as ErrCycleDetected. Cycles do not
// prevent scheduling, but members on a cycle read values that are one tick
// old for at least one edge.
func (g *Graph) Validate() error {
	if err := g.detectCycles(); err != nil {
		return fmt.Errorf("DAG validation failed: %w", err)
	}
	return nil
}

// detectCycles uses Depth-First Search (DFS) to find cycles in the DAG.
// Returns ErrCycleDetected with the cycle path if any cycle is found.
// Time complexity: O(V + E) where V is vertices and E is edges.
func (g *Graph) detectCycles() error {
	visited := make([]bool, len(g.Nodes))
	recStack := make([]bool, len(g.Nodes))

	var dfs func(NodeID, []NodeID) error
	dfs = func(nodeID NodeID, path []NodeID) error {
		visited[nodeID] = true
		recStack[nodeID] = true
		path = append(path, nodeID)

		for _, childID := range g.Nodes[nodeID].Children {
			if !visited[childID] {
				if err := dfs(childID, path); err != nil {
					return err
				}
			} else if recStack[childID] {
				// Cycle detected! Report it starting at the repeated node.
				start := slices.Index(path, childID)
				cyclePath := append(slices.Clone(path[start:]), childID)
				pathStr := make([]string, len(cyclePath))
				for i, id := range cyclePath {
					pathStr[i] = g.Nodes[id].Member.Name()
				}
				return fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(pathStr, " -> "))
			}
		}

		recStack[nodeID] = false
		return nil
	}

	// Check all nodes in insertion order (handles disconnected components)
	for _, node := range g.Nodes {
		if !visited[node.ID] {
			if err := dfs(node.ID, nil); err != nil {
				return err
			}
		}
	}

	return nil
}

// insertSorted inserts an item into a sorted slice maintaining sort order.
// Time complexity: O(log n + n) for binary search + insert.
func insertSorted(slice []NodeID, item NodeID) []NodeID {
	idx := sort.Search(len(slice), func(i int) bool {
		return slice[i] >= item
	})
	return slices.Insert(slice, idx, item)
}

// ranks partitions the graph into layers using Kahn's algorithm. Every layer
// holds the nodes whose parents all sit in earlier layers, in insertion
// order.
//
// When nodes remain but none is ready, the rest of the graph contains a
// cycle. The earliest remaining node is then placed in a layer of its own and
// reported in forced, and the sort continues.
func (g *Graph) ranks() (ranks [][]NodeID, forced []NodeID) {
	inDegree := make([]int, len(g.Nodes))
	for _, node := range g.Nodes {
		inDegree[node.ID] = len(node.Parents)
	}

	done := make([]bool, len(g.Nodes))
	ready := make([]NodeID, 0, len(g.Nodes)/4)
	for _, node := range g.Nodes {
		if inDegree[node.ID] == 0 {
			ready = append(ready, node.ID)
		}
	}

	remaining := len(g.Nodes)
	for remaining > 0 {
		if len(ready) == 0 {
			for _, node := range g.Nodes {
				if !done[node.ID] {
					ready = append(ready, node.ID)
					forced = append(forced, node.ID)
					break
				}
			}
		}

		rank := ready
		ready = make([]NodeID, 0, len(rank))
		for _, id := range rank {
			done[id] = true
			remaining--
		}
		for _, id := range rank {
			for _, childID := range g.Nodes[id].Children {
				if done[childID] {
					continue
				}
				inDegree[childID]--
				if inDegree[childID] == 0 {
					ready = insertSorted(ready, childID)
				}
			}
		}
		ranks = append(ranks, rank)
	}

	return ranks, forced
}
