package booking

import (
	"errors"
	"fmt"
)

// Refusal codes. Every refusal is distinguishable by kind so callers can
// render the right response: a guard violation is never conflated with a
// missing record or a lost update race.
const (
	CodeGuardViolation = "guardViolation"
	CodeNotFound       = "notFound"
	CodeConflict       = "conflict"
)

// Error is a typed transition refusal.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewGuardError refuses a transition whose business guard does not hold.
func NewGuardError(format string, args ...any) error {
	return &Error{Code: CodeGuardViolation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError refuses a request whose subject does not resolve.
func NewNotFoundError(format string, args ...any) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError refuses a transition that lost a race against a concurrent
// update; the caller should reload and retry.
func NewConflictError(format string, args ...any) error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func hasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsGuardViolation reports whether err is a business-rule refusal.
func IsGuardViolation(err error) bool { return hasCode(err, CodeGuardViolation) }

// IsNotFound reports whether err is a missing-record refusal.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsConflict reports whether err is a concurrent-modification refusal.
func IsConflict(err error) bool { return hasCode(err, CodeConflict) }
