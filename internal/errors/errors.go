// Package errors provides sentinel errors and error types for the position engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrMalformedEncoding indicates text that is not a six-field position encoding.
	ErrMalformedEncoding = errors.New("malformed position encoding")

	// ErrIllegalMove indicates a move rejected by the legality filter.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidSquare indicates a square reference outside a1-h8.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidNotation indicates move text that is neither long nor
	// standard algebraic.
	ErrInvalidNotation = errors.New("invalid move notation")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSessionNotFound indicates an unknown session identifier.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnknownOracle indicates an oracle name that is not registered.
	ErrUnknownOracle = errors.New("unknown oracle")
)

// EncodingError reports which field of an encoded position was rejected.
// It wraps ErrMalformedEncoding unless a more specific error is supplied.
type EncodingError struct {
	Field  string // Field name: fields, board, side, castling, enpassant, halfmove, fullmove
	Value  string // The offending text (may be truncated)
	Reason string // What was wrong with it
	Err    error  // The underlying error
}

// maxValueLen bounds how much of the offending text is echoed back.
const maxValueLen = 40

// NewEncodingError builds an EncodingError wrapping ErrMalformedEncoding.
func NewEncodingError(field, value, reason string) *EncodingError {
	return &EncodingError{
		Field:  field,
		Value:  value,
		Reason: reason,
		Err:    ErrMalformedEncoding,
	}
}

// Error returns a formatted error message including all available context.
func (e *EncodingError) Error() string {
	var parts []string

	if e.Field != "" {
		parts = append(parts, e.Field+" field")
	}

	if e.Value != "" {
		v := e.Value
		if len(v) > maxValueLen {
			v = v[:maxValueLen] + "..."
		}
		parts = append(parts, fmt.Sprintf("%q", v))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	context := strings.Join(parts, " ")
	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%v: %s", e.Err, context)
	}
	if context == "" {
		return "encoding error"
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the EncodingError wrapper.
func (e *EncodingError) Unwrap() error {
	return e.Err
}

// MoveError wraps errors with move context: the position the move was
// attempted in and the squares involved.
type MoveError struct {
	Err      error  // The underlying error
	Position string // Encoded position the move was played in (if known)
	Move     string // The move text, e.g. "e2e4"
	Ply      int    // 1-based index within a move sequence, 0 for a single move
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Move))
	}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("at ply %d", e.Ply))
	}
	if e.Position != "" {
		parts = append(parts, fmt.Sprintf("in %q", e.Position))
	}

	context := strings.Join(parts, " ")
	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
// It re-exports the standard library function so callers importing this
// package under the name errors keep access to it.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
