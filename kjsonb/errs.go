package kjsonb

import (
	"fmt"

	"github.com/signadot/kjson-format/kjson/ir"
)

var (
	ErrTruncated  = fmt.Errorf("%w: truncated", ir.ErrInvalidBinary)
	ErrBadTag     = fmt.Errorf("%w: unknown tag", ir.ErrInvalidBinary)
	ErrBadVarint  = fmt.Errorf("%w: malformed varint", ir.ErrInvalidBinary)
	ErrBadPayload = fmt.Errorf("%w: bad payload", ir.ErrInvalidBinary)
)

// DecodeError is a decoding failure at a byte offset of the input.
type DecodeError struct {
	Err    error
	Offset int
	Msg    string
}

func (e *DecodeError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("kjsonb: %v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("kjsonb: %v at offset %d: %s", e.Err, e.Offset, e.Msg)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Kind returns the name of the error kind, as ir.ErrorKindName.
func (e *DecodeError) Kind() string {
	return ir.ErrorKindName(e.Err)
}
