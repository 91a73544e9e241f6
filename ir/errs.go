package ir

import (
	"errors"

	"github.com/signadot/kjson-format/kjson/token"
)

// Error kinds shared by the parser, the stringifier and the binary codec.
// Positioned errors in those packages wrap one of these.
var (
	ErrOutOfMemory     = token.ErrOutOfMemory
	ErrSyntax          = token.ErrSyntax
	ErrUnexpectedToken = token.ErrUnexpectedToken
	ErrInvalidNumber   = token.ErrInvalidNumber
	ErrInvalidString   = token.ErrInvalidString
	ErrInvalidUUID     = token.ErrInvalidUUID
	ErrInvalidInstant  = token.ErrInvalidInstant
	ErrInvalidEscape   = token.ErrInvalidEscape
	ErrDepthExceeded   = token.ErrDepthExceeded
	ErrSizeExceeded    = token.ErrSizeExceeded
	ErrInvalidUTF8     = token.ErrInvalidUTF8
	ErrTrailingData    = token.ErrTrailingData
	ErrIncomplete      = token.ErrIncomplete
	ErrUnsupportedType = token.ErrUnsupportedType
	ErrOverflow        = token.ErrOverflow
	ErrInvalidBinary   = token.ErrInvalidBinary
	ErrInvalidDuration = token.ErrInvalidDuration
	ErrNonFinite       = token.ErrNonFinite

	ErrNotFound = errors.New("not found")
)

var kindNames = []struct {
	err  error
	name string
}{
	// wrapping kinds before the kinds they wrap
	{ErrInvalidDuration, "InvalidDuration"},
	{ErrNonFinite, "NonFinite"},
	{ErrOutOfMemory, "OutOfMemory"},
	{ErrUnexpectedToken, "UnexpectedToken"},
	{ErrInvalidNumber, "InvalidNumber"},
	{ErrInvalidString, "InvalidString"},
	{ErrInvalidUUID, "InvalidUuid"},
	{ErrInvalidInstant, "InvalidInstant"},
	{ErrInvalidEscape, "InvalidEscape"},
	{ErrDepthExceeded, "DepthExceeded"},
	{ErrSizeExceeded, "SizeExceeded"},
	{ErrInvalidUTF8, "InvalidUtf8"},
	{ErrTrailingData, "TrailingData"},
	{ErrIncomplete, "Incomplete"},
	{ErrUnsupportedType, "UnsupportedType"},
	{ErrOverflow, "Overflow"},
	{ErrInvalidBinary, "InvalidBinary"},
	{ErrSyntax, "SyntaxError"},
}

// ErrorKindName returns the name of the error kind err wraps, or "" if
// err does not wrap one of the kinds above.
func ErrorKindName(err error) string {
	for _, k := range kindNames {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}
