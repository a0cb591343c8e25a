package syntax

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error unwraps to exactly one of these.
var (
	ErrUnbalancedGrouping      = errors.New("unbalanced grouping")
	ErrMalformedQuantifier     = errors.New("malformed quantifier")
	ErrMalformedCharacterClass = errors.New("malformed character class")
	ErrUnsupportedSyntax       = errors.New("unsupported syntax")
	ErrMissingOperand          = errors.New("missing operand")
)

// Error describes a pattern that failed to compile.
type Error struct {
	Kind    error
	Pattern string
	Pos     int
	Detail  string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v at offset %d", e.Kind, e.Pos)
	if e.Pattern != "" {
		msg += fmt.Sprintf(" in %q", e.Pattern)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, pattern string, pos int, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Pattern: pattern,
		Pos:     pos,
		Detail:  fmt.Sprintf(format, args...),
	}
}
