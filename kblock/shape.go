package kblock

import (
	"fmt"
	"slices"
)

// Delays lists the delay depth of every logical port of one direction. An
// empty Delays means no ports.
type Delays []int

// Uniform returns count ports of the same depth.
func Uniform(count, depth int) (Delays, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: port count is %d, need at least 1", ErrConstructionRange, count)
	}
	if depth < 1 {
		return nil, fmt.Errorf("%w: delay depth is %d, need at least 1", ErrConstructionRange, depth)
	}

	d := make(Delays, count)
	for i := range d {
		d[i] = depth
	}
	return d, nil
}

// MustUniform is like Uniform but panics on error.
func MustUniform(count, depth int) Delays {
	d, err := Uniform(count, depth)
	must(err)
	return d
}

// Add returns the concatenation of d and other.
func (d Delays) Add(other ...Delays) Delays {
	out := slices.Clone(d)
	for _, o := range other {
		out = append(out, o...)
	}
	return out
}

// Validate checks that every depth is at least 1.
func (d Delays) Validate() error {
	for i, depth := range d {
		if depth < 1 {
			return fmt.Errorf("%w: port %d has delay depth %d, need at least 1", ErrConstructionRange, i, depth)
		}
	}
	return nil
}

// Shape is the fixed port layout of a node.
type Shape struct {
	Inputs  Delays
	Outputs Delays
}

func (s Shape) Validate() error {
	if err := s.Inputs.Validate(); err != nil {
		return fmt.Errorf("inputs: %w", err)
	}
	if err := s.Outputs.Validate(); err != nil {
		return fmt.Errorf("outputs: %w", err)
	}
	return nil
}
