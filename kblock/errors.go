package kblock

import "errors"

// Sentinel errors. All of them report precondition violations; none of them is
// transient and retrying the failed call will fail the same way.
var (
	// ErrInvalidWiring is returned when two ports of the same direction are connected.
	ErrInvalidWiring = errors.New("invalid wiring")
	// ErrInvalidOperation is returned when an output is disconnected.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrOutputShape is returned when a transfer function returns a wrong number of outputs.
	ErrOutputShape = errors.New("output shape mismatch")
	// ErrConstructionRange is returned for degenerate shape parameters.
	ErrConstructionRange = errors.New("construction parameter out of range")
)

func must(err error) {
	if err != nil {
		panic(err)
	}
}
