package syntax

import (
	"errors"
	"fmt"
)

// Sentinel parse errors. ParseError wraps one of these with position
// context; callers can match them with errors.Is.
var (
	// ErrEmptyPattern indicates an empty pattern or empty alternation branch.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrEmptyGroup indicates an empty group "()".
	ErrEmptyGroup = errors.New("empty group")

	// ErrUnbalancedGroup indicates a missing '(' or ')'.
	ErrUnbalancedGroup = errors.New("unbalanced group")

	// ErrDanglingQuantifier indicates a quantifier with no preceding atom.
	ErrDanglingQuantifier = errors.New("dangling quantifier")

	// ErrInvalidClass indicates a malformed character class.
	ErrInvalidClass = errors.New("invalid character class")

	// ErrInvalidRepeat indicates {m,n} bounds with n < m or out of range.
	ErrInvalidRepeat = errors.New("invalid repetition bounds")

	// ErrTrailingBackslash indicates a '\' at the end of the pattern.
	ErrTrailingBackslash = errors.New("trailing backslash")

	// ErrNestedQuantifier indicates a quantifier applied directly to
	// another quantifier, as in "a**".
	ErrNestedQuantifier = errors.New("nested quantifier")

	// ErrUnsupportedGroup indicates a "(?" group construct other than
	// the non-capturing "(?:".
	ErrUnsupportedGroup = errors.New("unsupported group syntax")

	// ErrTooDeep indicates group nesting beyond the parser's depth limit.
	ErrTooDeep = errors.New("pattern nesting too deep")
)

// A ParseError reports a syntax error and the byte offset in the
// pattern where it was detected.
type ParseError struct {
	Pattern string
	Pos     int
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %q at offset %d: %v", e.Pattern, e.Pos, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
