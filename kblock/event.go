package kblock

import (
	"slices"
	"sync"
)

// EventKind tells what changed.
type EventKind int

const (
	// Connected is fired by both ports of a new connection.
	Connected EventKind = iota
	// Disconnected is fired by both ports of a severed connection.
	Disconnected
	// MembershipChanged is fired by collections whose member list changed.
	MembershipChanged
)

func (k EventKind) String() string {
	switch k {
	case Connected:
		return "Connected"
	case Disconnected:
		return "Disconnected"
	case MembershipChanged:
		return "MembershipChanged"
	default:
		return "Unknown"
	}
}

// Event describes a change of the wiring. For connection events From is the
// driving output and To the receiving port; both are nil for membership
// changes.
type Event struct {
	Kind EventKind
	From Endpoint
	To   Endpoint
}

// Observable is implemented by everything that reports wiring changes.
type Observable interface {
	// Subscribe registers fn and returns a function that removes it again.
	Subscribe(fn func(Event)) (cancel func())
}

// Observers is a list of event callbacks. The zero value is ready to use.
// Callbacks are invoked without any lock held, so a callback may subscribe,
// unsubscribe or emit itself.
type Observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Event)
}

func (o *Observers) Subscribe(fn func(Event)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fns == nil {
		o.fns = make(map[int]func(Event))
	}
	id := o.next
	o.next++
	o.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.fns, id)
			o.mu.Unlock()
		})
	}
}

// Emit calls every subscriber in subscription order.
func (o *Observers) Emit(ev Event) {
	o.mu.Lock()
	ids := make([]int, 0, len(o.fns))
	for id := range o.fns {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, o.fns[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Len returns the number of registered callbacks.
func (o *Observers) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.fns)
}
