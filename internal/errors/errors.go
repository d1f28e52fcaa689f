// Package errors provides centralized error definitions and error handling
// utilities for the bake codebase. It defines sentinel errors for the
// document, resolution, and execution subsystems, plus semantic error types
// that carry structured context.
//
// Callers import this package instead of the standard library errors package;
// the stdlib helpers are re-exported for convenience:
//
//	if errors.Is(err, errors.ErrNoBakefile) { ... }
//
//	var cycleErr *errors.CycleError
//	if errors.As(err, &cycleErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Document-related sentinel errors
var (
	// ErrNoBakefile indicates that no Bashfile was found within the search depth.
	ErrNoBakefile = New("no Bashfile found")
	// ErrNoBackingChunk indicates a task was constructed without a backing chunk.
	ErrNoBackingChunk = New("task has no backing chunk")
	// ErrTaskNotFound indicates that a named task does not exist in the document.
	ErrTaskNotFound = New("task not found")
)

// Execution-related sentinel errors
var (
	// ErrRunAborted indicates the operator declined a confirmation, ending the run.
	ErrRunAborted = New("run aborted")
	// ErrDependencyCycle indicates a circular dependency between tasks.
	ErrDependencyCycle = New("dependency cycle detected")
)

// CycleError reports a circular dependency chain discovered during
// resolution. Path holds the task names forming the cycle, with the
// repeated task at both ends.
type CycleError struct {
	Path []string
}

// Error returns the cycle rendered as a chain of task names.
func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}

// Is reports a match against the ErrDependencyCycle sentinel, so callers
// can use errors.Is without knowing the concrete type.
func (e *CycleError) Is(target error) bool {
	return target == ErrDependencyCycle
}

// OverlayError reports an environment overlay input that was neither valid
// JSON nor a path to an existing file.
type OverlayError struct {
	Input string
	Cause error
}

// Error returns the overlay failure with its input for diagnosis.
func (e *OverlayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("environment overlay %q is neither valid JSON nor an existing file: %v", e.Input, e.Cause)
	}
	return fmt.Sprintf("environment overlay %q is neither valid JSON nor an existing file", e.Input)
}

// Unwrap returns the underlying parse or stat error.
func (e *OverlayError) Unwrap() error {
	return e.Cause
}
