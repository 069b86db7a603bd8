package edit

import "errors"

var (
	// ErrHasChildren indicates an object is still the owner of other objects.
	ErrHasChildren = errors.New("edit: object owns other objects; use RemoveCascade")

	// ErrNotInDocument indicates the object is not part of the session's document.
	ErrNotInDocument = errors.New("edit: object not in document")

	// ErrTooFewPoints indicates a wire needs at least two vertices.
	ErrTooFewPoints = errors.New("edit: wire needs at least two points")
)
