// Package outcome defines the error/result type returned by the
// non-hot-path public operations of the rule engine and its managers.
//
// Hot-path packages (art, numtrie, sortedarray, oriter) never use this
// type: they report absence or failure via sentinel returns (nil, false,
// zero length) because they run inside performance-critical search code.
package outcome

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Code mirrors HTTP status conventions, as spec.md §7 requires.
type Code int

const (
	// CodeValidation marks malformed input: bad rule JSON, incompatible
	// action combinations, a filter-by referencing an unknown field, an
	// out-of-range listing offset.
	CodeValidation Code = 400
	// CodeNotFound marks a lookup for an absent index or rule id.
	CodeNotFound Code = 404
	// CodeStorage marks a key-value store write/delete failure.
	CodeStorage Code = 500
)

// Outcome is the error type returned by rule-engine and manager
// operations. It is always non-nil on failure and nil on success.
type Outcome struct {
	Code    Code
	Message string
	cause   error
}

// Error implements the error interface.
func (o *Outcome) Error() string {
	if o == nil {
		return ""
	}
	if o.cause != nil {
		return fmt.Sprintf("%s: %v", o.Message, o.cause)
	}
	return o.Message
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (o *Outcome) Unwrap() error {
	if o == nil {
		return nil
	}
	return o.cause
}

// New builds an Outcome with no wrapped cause.
func New(code Code, format string, args ...any) *Outcome {
	return &Outcome{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Outcome around an existing cause, preserving a stack
// trace via cockroachdb/errors so the original failure site survives
// propagation through the rule engine.
func Wrap(code Code, cause error, format string, args ...any) *Outcome {
	return &Outcome{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		cause:   errors.WithStack(cause),
	}
}

// Validation is a convenience constructor for CodeValidation outcomes.
func Validation(format string, args ...any) *Outcome {
	return New(CodeValidation, format, args...)
}

// NotFound is a convenience constructor for CodeNotFound outcomes.
func NotFound(format string, args ...any) *Outcome {
	return New(CodeNotFound, format, args...)
}

// Storage is a convenience constructor for CodeStorage outcomes,
// wrapping the underlying store error.
func Storage(cause error, format string, args ...any) *Outcome {
	return Wrap(CodeStorage, cause, format, args...)
}

// Is reports whether err is an *Outcome with the given code, following
// wrapped causes via errors.As.
func Is(err error, code Code) bool {
	var o *Outcome
	if errors.As(err, &o) {
		return o.Code == code
	}
	return false
}
