package kblock

import "fmt"

// Direction of a port.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "Input"
	case Output:
		return "Output"
	default:
		return "Unknown"
	}
}

// Endpoint is the payload independent view of a Port. Schedulers and
// inspection tools work on endpoints.
type Endpoint interface {
	ID() ID
	Name() string
	Direction() Direction
	// Driven reports whether the port is an output slot whose value is
	// supplied from outside the owning node.
	Driven() bool
	// Owner returns the block the port belongs to, or nil for free ports.
	Owner() Block
	// Upstream returns the port this one reads from, or nil when unwired.
	Upstream() Endpoint
	IgnoreConnection() bool
	// Disconnect severs the upstream connection of a receiving port.
	Disconnect() error
	// Any returns the current value.
	Any() any
}

// Port is a single typed value cell. Inputs, and outputs marked as driven,
// may read from another port; every other port reads its own storage.
//
// Ports carry no lock. A port is written by its owning node while latching,
// or by driver code between ticks.
type Port[T any] struct {
	id     ID
	name   string
	dir    Direction
	driven bool
	owner  Block
	notify func(Event)

	value  T
	from   *Port[T]
	ignore bool
}

// NewPort creates a port that belongs to no block. Nodes create their ports
// themselves; free ports are useful to feed or tap a graph from driver code.
func NewPort[T any](ids IDAllocator, name string, dir Direction) *Port[T] {
	return &Port[T]{
		id:   ids.Next(),
		name: name,
		dir:  dir,
	}
}

func (p *Port[T]) ID() ID               { return p.id }
func (p *Port[T]) Name() string         { return p.name }
func (p *Port[T]) SetName(name string)  { p.name = name }
func (p *Port[T]) Direction() Direction { return p.dir }
func (p *Port[T]) Driven() bool         { return p.driven }

func (p *Port[T]) Owner() Block { return p.owner }

// Value returns the value of the connected port when wired, the own storage
// otherwise.
func (p *Port[T]) Value() T {
	if p.from != nil {
		return p.from.Value()
	}
	return p.value
}

// SetValue writes the own storage. It never writes through a connection, so
// a wired port keeps reporting its upstream value.
func (p *Port[T]) SetValue(v T) {
	p.value = v
}

// CloneValue returns an independent copy of Value.
func (p *Port[T]) CloneValue() T {
	return Clone(p.Value())
}

func (p *Port[T]) Any() any {
	return p.Value()
}

// ConnectedFrom returns the port this one reads from, or nil.
func (p *Port[T]) ConnectedFrom() *Port[T] {
	return p.from
}

func (p *Port[T]) Upstream() Endpoint {
	if p.from == nil {
		return nil
	}
	return p.from
}

func (p *Port[T]) IgnoreConnection() bool {
	return p.ignore
}

// SetIgnoreConnection excludes the connection of this port from dependency
// extraction, so the reader may be scheduled in the same rank as its
// producer. The flag is reset on disconnect.
func (p *Port[T]) SetIgnoreConnection(ignore bool) {
	p.ignore = ignore
}

func (p *Port[T]) receives() bool {
	return p.dir == Input || p.driven
}

// Connect wires p and other. One side has to be an output, the other an
// input; an output slot marked as driven acts as the receiving side when
// paired with a plain output. The receiving side is rewired if it already
// had a connection.
func (p *Port[T]) Connect(other *Port[T]) error {
	if other == nil {
		return fmt.Errorf("%w: %s %q connected to nil", ErrInvalidWiring, p.dir, p.name)
	}

	var out, in *Port[T]
	switch {
	case p.dir == Output && other.dir == Input:
		out, in = p, other
	case p.dir == Input && other.dir == Output:
		out, in = other, p
	case p.dir == Output && other.dir == Output && p.driven != other.driven:
		out, in = p, other
		if p.driven {
			out, in = other, p
		}
	default:
		return fmt.Errorf("%w: cannot connect %s %q to %s %q", ErrInvalidWiring, p.dir, p.name, other.dir, other.name)
	}

	if in.from == out {
		return nil
	}
	in.disconnect()

	in.from = out
	ev := Event{Kind: Connected, From: out, To: in}
	out.fire(ev)
	in.fire(ev)
	return nil
}

// Disconnect severs the connection of a receiving port. The last forwarded
// value is kept as own value. Disconnecting an unwired port does nothing.
func (p *Port[T]) Disconnect() error {
	if !p.receives() {
		return fmt.Errorf("%w: output %q holds no connection", ErrInvalidOperation, p.name)
	}
	p.disconnect()
	return nil
}

func (p *Port[T]) disconnect() {
	from := p.from
	if from == nil {
		return
	}

	p.value = Clone(from.Value())
	p.from = nil
	p.ignore = false

	ev := Event{Kind: Disconnected, From: from, To: p}
	from.fire(ev)
	p.fire(ev)
}

func (p *Port[T]) fire(ev Event) {
	if p.notify != nil {
		p.notify(ev)
	}
}

func (p *Port[T]) String() string {
	return fmt.Sprintf("%s(%s#%d)", p.name, p.dir, p.id)
}
