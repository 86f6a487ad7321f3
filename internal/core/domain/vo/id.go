// Package vo holds the immutable value objects of the storefront domain.
// Each constructor validates its invariants and returns a fault on bad input,
// so downstream code can assume any value object it holds is well-formed.
package vo

import (
	"github.com/google/uuid"

	"github.com/jcmexdev/storefront/internal/core/fault"
)

// ID is an entity identifier. It is always a canonical UUID string.
type ID string

// NewID generates a fresh random identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// ParseID validates an externally supplied identifier.
func ParseID(s string) (ID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fault.Validation("invalid_id", "malformed identifier %q", s)
	}
	return ID(parsed.String()), nil
}

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}
