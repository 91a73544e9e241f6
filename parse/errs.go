package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/token"
)

// Error is a positioned parse error. Err wraps one of the ir error kinds,
// so errors.Is(err, ir.ErrIncomplete) and the like hold.
type Error struct {
	Err    error
	Offset int
	// Line and Col are 1-based; Col counts bytes.
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s at line %d, col %d (offset %d)", e.Err, e.Line, e.Col, e.Offset)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind returns the name of the error kind, as ir.ErrorKindName.
func (e *Error) Kind() string {
	return ir.ErrorKindName(e.Err)
}

func newError(pd *token.PosDoc, off int, err error, msg string) *Error {
	l, c := pd.LineCol(off)
	return &Error{Err: err, Offset: off, Line: l + 1, Col: c + 1, Msg: msg}
}

// scanError positions an error from the token scanners, whose offsets
// are relative to base.
func scanError(pd *token.PosDoc, base int, err error) *Error {
	var se *token.ScanErr
	if errors.As(err, &se) {
		return newError(pd, base+se.Off, se.Err, "")
	}
	return newError(pd, base, err, "")
}
