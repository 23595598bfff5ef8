// Package kdag derives an execution order from the port connections of a set
// of blocks.
//
// # Overview
//
// Every member added to a Builder becomes a Node of a Graph. Build inspects
// the ports of every member that implements kblock.Block and adds an edge
// parent -> child whenever one of the child's receiving ports (inputs, and
// output slots marked as driven) reads from a port owned by the parent.
//
// The resulting DAG partitions the members into ranks with Kahn's algorithm:
//
//	rank 0: members without dependencies
//	rank 1: members depending only on rank 0
//	...
//
// Members of one rank are independent of each other and may run
// concurrently. Ranks must run one after the other.
//
// # Cycles
//
// Feedback loops through delay lines are common in block diagrams, and a
// member reading its own output does not create an edge. Cycles spanning
// several members are not rejected either: when the sort gets stuck, the
// earliest remaining member is forced into a rank of its own and the sort
// continues. DAG.Forced lists those members, Graph.Validate reports the cycle
// path with ErrCycleDetected.
//
// # Basic Usage
//
//	builder := kdag.NewBuilder(logr.Discard())
//	builder.MustAdd(source, filter, probe)
//	dag := builder.MustBuild()
//	for _, rank := range dag.Ranks() {
//	    for _, member := range rank {
//	        _ = member.UpdateAndLatch()
//	    }
//	}
//
// Builder is not safe for concurrent use. A built DAG is immutable; it does
// not notice later wiring changes, so callers rebuild it when the wiring
// changes.
package kdag
