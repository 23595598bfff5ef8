package blockflow

import "errors"

var (
	// ErrSelfReference is returned when a collection would contain itself.
	ErrSelfReference = errors.New("collection cannot contain itself")
	// ErrIndexOutOfRange is returned by Insert for positions outside the member list.
	ErrIndexOutOfRange = errors.New("index out of range")
)
