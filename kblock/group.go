package kblock

import "fmt"

// Group is the delay line of one logical input or output. Slot 0 holds the
// value at the current tick, slot k the value k ticks ago.
type Group[T any] struct {
	slots  []*Port[T]
	driven bool
}

func newGroup[T any](ids IDAllocator, dir Direction, depth int, name string, driven bool, owner Block, notify func(Event)) *Group[T] {
	g := &Group[T]{
		slots:  make([]*Port[T], depth),
		driven: driven,
	}
	for k := range g.slots {
		slotName := name
		if k > 0 {
			slotName = fmt.Sprintf("%s(t-%d)", name, k)
		}
		g.slots[k] = &Port[T]{
			id:     ids.Next(),
			name:   slotName,
			dir:    dir,
			driven: driven && k == 0,
			owner:  owner,
			notify: notify,
		}
	}
	return g
}

// Depth returns the number of slots.
func (g *Group[T]) Depth() int {
	return len(g.slots)
}

// At returns slot k. It panics if k is out of range.
func (g *Group[T]) At(k int) *Port[T] {
	return g.slots[k]
}

// Value returns the value of slot k.
func (g *Group[T]) Value(k int) T {
	return g.slots[k].Value()
}

// Set writes the own storage of slot k, e.g. to seed initial conditions.
func (g *Group[T]) Set(k int, v T) {
	g.slots[k].SetValue(v)
}

// Driven reports whether slot 0 is supplied from outside the node.
func (g *Group[T]) Driven() bool {
	return g.driven
}

// Endpoints returns the slots as endpoints, slot 0 first.
func (g *Group[T]) Endpoints() []Endpoint {
	eps := make([]Endpoint, len(g.slots))
	for k, p := range g.slots {
		eps[k] = p
	}
	return eps
}

// shiftAndSet moves history one step into the past, leaving slot 0 alone,
// and stores v in slot 1.
func (g *Group[T]) shiftAndSet(v T) {
	if len(g.slots) < 2 {
		return
	}
	for i := len(g.slots) - 2; i >= 1; i-- {
		g.slots[i+1].value = g.slots[i].CloneValue()
	}
	g.slots[1].value = Clone(v)
}

// storage returns the own storage of every slot.
func (g *Group[T]) storage() []T {
	vals := make([]T, len(g.slots))
	for k, p := range g.slots {
		vals[k] = p.value
	}
	return vals
}

func (g *Group[T]) restore(vals []T) {
	for k, v := range vals {
		g.slots[k].value = v
	}
}

// push moves the whole history, slot 0 included, one step into the past.
// With head set, v becomes the new slot 0.
func (g *Group[T]) push(v T, head bool) {
	for i := len(g.slots) - 2; i >= 0; i-- {
		g.slots[i+1].value = g.slots[i].CloneValue()
	}
	if head {
		g.slots[0].value = Clone(v)
	}
}
