// Package failure defines the error kinds shared by the address book core and
// the command layer that translates them into user text.
package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a recoverable failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidValue
	KindNotFound
	KindMissingArgument
)

func (k Kind) String() string {
	switch k {
	case KindInvalidValue:
		return "invalid_value"
	case KindNotFound:
		return "not_found"
	case KindMissingArgument:
		return "missing_argument"
	default:
		return "unknown"
	}
}

// Sentinel errors for caller-checkable conditions. Every *Error unwraps to
// exactly one of them.
var (
	ErrInvalidValue    = errors.New("invalid value")
	ErrNotFound        = errors.New("not found")
	ErrMissingArgument = errors.New("missing argument")
)

// Error is a domain failure with enough context for the command layer to
// render a message.
type Error struct {
	Kind   Kind
	Field  string // "name", "phone", "birthday", "contact", or a command name.
	Value  string // Offending input, if any.
	Detail string // Human-readable hint, e.g. "expected DD.MM.YYYY".
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Field, e.sentinel())
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap lets errors.Is match the kind's sentinel.
func (e *Error) Unwrap() error {
	return e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindInvalidValue:
		return ErrInvalidValue
	case KindNotFound:
		return ErrNotFound
	case KindMissingArgument:
		return ErrMissingArgument
	default:
		return errors.New("unknown failure")
	}
}

// InvalidValue reports malformed input for field.
func InvalidValue(field, value, detail string) *Error {
	return &Error{Kind: KindInvalidValue, Field: field, Value: value, Detail: detail}
}

// NotFound reports that the referenced contact or phone does not exist.
func NotFound(field, value string) *Error {
	return &Error{Kind: KindNotFound, Field: field, Value: value}
}

// MissingArgument reports that a command received too few tokens.
func MissingArgument(command, usage string) *Error {
	return &Error{Kind: KindMissingArgument, Field: command, Detail: usage}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
