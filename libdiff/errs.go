package libdiff

import "errors"

var (
	// ErrConflict is returned when a change does not fit the document it
	// is applied to.
	ErrConflict = errors.New("patch conflict")
	// ErrMalformed is returned when a node is not the node form of a
	// change.
	ErrMalformed = errors.New("malformed diff")
)
