package ir

import (
	"fmt"

	"github.com/google/uuid"
)

// NewUUIDv4 returns a node holding a random UUID.
func NewUUIDv4() (*Node, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("uuid v4: %w", err)
	}
	return FromUUID(u), nil
}

// NewUUIDv7 returns a node holding a time ordered UUID.
func NewUUIDv7() (*Node, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("uuid v7: %w", err)
	}
	return FromUUID(u), nil
}

// ParseUUID parses the 8-4-4-4-12 form only; uuid.Parse also accepts
// braced and urn forms, which are not kJSON.
func ParseUUID(s string) (uuid.UUID, error) {
	if len(s) != 36 {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidUUID, s)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidUUID, err)
	}
	return u, nil
}
