package token

import (
	"github.com/google/uuid"
)

// UUIDLen is the length of the canonical textual form of a UUID.
const UUIDLen = 36

var uuidDashes = [...]int{8, 13, 18, 23}

// UUIDShape returns the length of the 8-4-4-4-12 hex prefix of d which
// matches the UUID shape. The shape is complete when it returns UUIDLen.
func UUIDShape(d []byte) int {
	di := 0
	for i := 0; i < UUIDLen; i++ {
		if i >= len(d) {
			return i
		}
		if di < len(uuidDashes) && i == uuidDashes[di] {
			if d[i] != '-' {
				return i
			}
			di++
			continue
		}
		if hexVal(d[i]) < 0 {
			return i
		}
	}
	return UUIDLen
}

// UUIDPrefix reports whether d starts with 8 hex digits and a dash, the
// point from which a token can only be a UUID.
func UUIDPrefix(d []byte) bool {
	return UUIDShape(d) > 8
}

// ScanUUID scans a UUID at the start of d. The UUID must be followed by
// a token boundary.
func ScanUUID(d []byte) (uuid.UUID, int, error) {
	n := UUIDShape(d)
	if n < UUIDLen {
		if n >= len(d) {
			return uuid.Nil, n, scanErrf(n, ErrInvalidUUID, "truncated uuid")
		}
		return uuid.Nil, n, scanErrf(n, ErrInvalidUUID, "unexpected %q", d[n])
	}
	if n < len(d) && (IsIdentPart(d[n]) || d[n] == '-' || d[n] == '.') {
		return uuid.Nil, n, scanErrf(n, ErrInvalidUUID, "unexpected %q after uuid", d[n])
	}
	u, err := uuid.ParseBytes(d[:n])
	if err != nil {
		return uuid.Nil, 0, scanErrf(0, ErrInvalidUUID, "%v", err)
	}
	return u, n, nil
}

// AppendUUID appends the lowercase canonical form of u.
func AppendUUID(dst []byte, u uuid.UUID) []byte {
	return append(dst, u.String()...)
}
