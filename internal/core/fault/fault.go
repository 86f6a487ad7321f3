// Package fault defines the error taxonomy shared by the domain and use case
// layers. Every business failure is a *Fault carrying a machine-checkable kind
// and code; transport layers map the kind to a protocol status and never need
// to parse messages.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a fault for callers that only care about the category.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindForbidden  Kind = "forbidden"
)

// Fault is a typed business error. Code is a stable machine identifier
// (e.g. "invalid_order_item"), Message is human-readable, Detail is optional
// free text with context such as the offending index.
type Fault struct {
	Kind    Kind
	Code    string
	Message string
	Detail  string
}

func (f *Fault) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", f.Code, f.Message, f.Detail)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// Is makes errors.Is match two faults by kind and code, ignoring the
// free-text fields.
func (f *Fault) Is(target error) bool {
	var other *Fault
	if !errors.As(target, &other) {
		return false
	}
	return f.Kind == other.Kind && f.Code == other.Code
}

// WithDetail returns a copy of the fault with Detail set.
func (f *Fault) WithDetail(format string, args ...any) *Fault {
	clone := *f
	clone.Detail = fmt.Sprintf(format, args...)
	return &clone
}

func Validation(code, format string, args ...any) *Fault {
	return &Fault{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFound(code, format string, args ...any) *Fault {
	return &Fault{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Conflict(code, format string, args ...any) *Fault {
	return &Fault{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(code, format string, args ...any) *Fault {
	return &Fault{Kind: KindForbidden, Code: code, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err if it is (or wraps) a *Fault, or "" otherwise.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// IsKind reports whether err is a fault of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
