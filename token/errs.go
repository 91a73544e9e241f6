package token

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfMemory     = errors.New("out of memory")
	ErrSyntax          = errors.New("syntax error")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrInvalidString   = errors.New("invalid string")
	ErrInvalidUUID     = errors.New("invalid uuid")
	ErrInvalidInstant  = errors.New("invalid instant")
	ErrInvalidEscape   = errors.New("invalid escape")
	ErrDepthExceeded   = errors.New("maximum depth exceeded")
	ErrSizeExceeded    = errors.New("maximum size exceeded")
	ErrInvalidUTF8     = errors.New("invalid utf8")
	ErrTrailingData    = errors.New("trailing data")
	ErrIncomplete      = errors.New("incomplete input")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrOverflow        = errors.New("numeric overflow")
	ErrInvalidBinary   = errors.New("invalid binary")

	ErrInvalidDuration = fmt.Errorf("%w: invalid duration", ErrSyntax)
	ErrNonFinite       = fmt.Errorf("%w: non-finite number", ErrUnsupportedType)

	ErrNumberLeadingZero = fmt.Errorf("%w: leading zero", ErrInvalidNumber)
	ErrNumberSuffix      = fmt.Errorf("%w: bad suffix", ErrInvalidNumber)
	ErrUnterminated      = fmt.Errorf("%w: unterminated", ErrIncomplete)
)

// ScanErr is an error found by a scanner, Off bytes into the scanned input.
type ScanErr struct {
	Err error
	Off int
}

func (e *ScanErr) Unwrap() error {
	return e.Err
}

func (e *ScanErr) Error() string {
	return fmt.Sprintf("%s at +%d", e.Err.Error(), e.Off)
}

func scanErr(off int, err error) error {
	return &ScanErr{Err: err, Off: off}
}

func scanErrf(off int, err error, format string, args ...any) error {
	return &ScanErr{Err: fmt.Errorf("%w: "+format, append([]any{err}, args...)...), Off: off}
}
