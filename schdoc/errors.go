package schdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingStream is returned when a container has no FileHeader stream.
	ErrMissingStream = errors.New("schdoc: missing FileHeader stream")
	// ErrDanglingOwner is returned when an object still names a removed
	// object as its owner.
	ErrDanglingOwner = errors.New("schdoc: owner reference to a removed object")
)

// EncodeError names the entity that could not be encoded.
type EncodeError struct {
	Index int
	Kind  Kind
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("schdoc: encode object %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
