package vm

import (
	"errors"
	"fmt"
)

// ErrProgramTooLarge indicates the compiled program exceeded
// MaxProgramSize, typically through large counted repeats.
var ErrProgramTooLarge = errors.New("compiled program too large")

// CompileError wraps a code generation failure with the pattern.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("compile failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("compile failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
