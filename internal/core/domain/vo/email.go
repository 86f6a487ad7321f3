package vo

import (
	"regexp"
	"strings"

	"github.com/jcmexdev/storefront/internal/core/fault"
)

// emailPattern is deliberately loose: one @, no spaces, a dot in the domain.
// Full RFC 5322 validation belongs to the mail provider, not the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a normalized (lowercased, trimmed) e-mail address.
type Email string

func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(normalized) {
		return "", fault.Validation("invalid_email", "malformed e-mail address %q", raw)
	}
	return Email(normalized), nil
}

func (e Email) String() string {
	return string(e)
}
