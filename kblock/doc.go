/*
Package kblock provides the building blocks of a discrete-time dataflow graph.

# Ports and delay lines

A Port is a single typed value cell. Ports come in two directions: outputs
publish values, inputs read them. A connection always links one output to one
input, and only the input stores it: reading a wired input returns the value of
the output it is connected to. Disconnecting an input keeps the last forwarded
value.

Every logical input or output of a node is a Group of ports, a delay line. Slot
0 holds the value at the current tick, slot k the value k ticks ago:

	slot:   0     1      2
	value:  x(t)  x(t-1) x(t-2)

# Nodes

A Node runs in two phases per tick. Update snapshots the current inputs, shifts
the input history and calls the transfer function, which stages the next
outputs. LatchOutputs pushes the staged outputs into the output delay lines. A
collection first updates every node and then latches every node, so all nodes
of a tick observe the same previous state:

	n := kblock.MustNew[float64, float64](ids,
		kblock.Shape{Inputs: kblock.Delays{1}, Outputs: kblock.Delays{1}},
		func(n *kblock.Node[float64, float64], staged []float64) ([]float64, error) {
			staged[0] = 2 * n.Input(0)
			return staged, nil
		},
	)

Values are cloned whenever they move into history, so a payload published at
tick t cannot be mutated by a node holding a reference from a later tick.
Payloads implementing Cloner control their own copy.

Output groups created with WithDrivenOutputs receive their current value from a
connection instead of the transfer function. They let a container expose an
inner output as its own.
*/
package kblock
