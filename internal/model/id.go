package model

import (
	"strings"

	"github.com/google/uuid"
)

// ID identifies vehicles and refuelings. It is stored as an uppercase
// canonical UUID string.
type ID uuid.UUID

// NilID is the zero ID.
var NilID ID

// NewID returns a random (v4) ID.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses a canonical UUID string in either case.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return NilID, err
	}
	return ID(u), nil
}

// String returns the uppercase canonical form.
func (id ID) String() string {
	return strings.ToUpper(uuid.UUID(id).String())
}

// Short returns the first 8 characters, enough to tell records apart on screen.
func (id ID) Short() string {
	return id.String()[:8]
}

// IsZero reports whether id is the nil UUID.
func (id ID) IsZero() bool {
	return id == NilID
}

// HasPrefix reports whether the canonical form starts with prefix (case-insensitive).
func (id ID) HasPrefix(prefix string) bool {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	return prefix != "" && strings.HasPrefix(id.String(), prefix)
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
