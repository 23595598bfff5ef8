package kblock

import "sync/atomic"

// ID identifies a port, a node or a collection. IDs are only unique among
// values drawn from the same IDAllocator.
type ID uint64

// IDAllocator hands out IDs. Implementations must be safe for concurrent use.
type IDAllocator interface {
	Next() ID
}

// Sequence is an IDAllocator that counts up from zero.
type Sequence struct {
	next atomic.Uint64
}

// NewSequence creates a new Sequence starting at 0.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next ID of the sequence.
func (s *Sequence) Next() ID {
	return ID(s.next.Add(1) - 1)
}
