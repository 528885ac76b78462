package macro

import (
	"errors"
	"fmt"
)

// ErrInlineNotSupported is the cause reported when a macro that only works
// at block level is used inline.
var ErrInlineNotSupported = errors.New("macro cannot be used inline")

// UnknownMacroError reports an identifier with no registry entry.
type UnknownMacroError struct {
	ID string
}

func (e *UnknownMacroError) Error() string {
	return fmt.Sprintf("unknown macro: %s", e.ID)
}

// ExecutionError reports a macro implementation that failed.
type ExecutionError struct {
	ID  string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("macro %s failed: %v", e.ID, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
