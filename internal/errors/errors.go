package errors

import (
	"errors"
	"fmt"
	"strings"
)

// PocketTTSError is the base interface for all server errors.
type PocketTTSError interface {
	error
	IsPocketTTSError() bool
}

// Compile-time verification that all error types implement PocketTTSError.
var (
	_ PocketTTSError = (*ProgramNotFoundError)(nil)
	_ PocketTTSError = (*ProgramStartError)(nil)
	_ PocketTTSError = (*ProcessError)(nil)
	_ PocketTTSError = (*UnknownToolError)(nil)
	_ PocketTTSError = (*DuplicateToolError)(nil)
	_ PocketTTSError = (*InvalidArgumentsError)(nil)
	_ PocketTTSError = (*HandlerPanicError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrEmptyToolName indicates a tool was registered without a name.
	ErrEmptyToolName = errors.New("tool name is empty")

	// ErrNilHandler indicates a tool was registered without a handler.
	ErrNilHandler = errors.New("tool handler is nil")

	// ErrEmptyResult indicates a handler returned no content.
	ErrEmptyResult = errors.New("tool returned no content")
)

// ProgramNotFoundError indicates an external program could not be located.
type ProgramNotFoundError struct {
	Program       string
	SearchedPaths []string
}

func (e *ProgramNotFoundError) Error() string {
	return fmt.Sprintf("%s not found in: %v", e.Program, e.SearchedPaths)
}

// IsPocketTTSError implements PocketTTSError.
func (e *ProgramNotFoundError) IsPocketTTSError() bool { return true }

// ProgramStartError indicates an external program could not be started.
type ProgramStartError struct {
	Program string
	Err     error
}

func (e *ProgramStartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Program, e.Err)
}

func (e *ProgramStartError) Unwrap() error {
	return e.Err
}

// IsPocketTTSError implements PocketTTSError.
func (e *ProgramStartError) IsPocketTTSError() bool { return true }

// ProcessError indicates an external program exited with a non-zero status.
type ProcessError struct {
	Program  string
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Program, e.ExitCode)
	}

	return fmt.Sprintf("%s exited with status %d: %s", e.Program, e.ExitCode, stderr)
}

// IsPocketTTSError implements PocketTTSError.
func (e *ProcessError) IsPocketTTSError() bool { return true }

// UnknownToolError indicates a call named a tool that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "Unknown tool: " + e.Name
}

// IsPocketTTSError implements PocketTTSError.
func (e *UnknownToolError) IsPocketTTSError() bool { return true }

// DuplicateToolError indicates two tools were registered under one name.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return "duplicate tool name: " + e.Name
}

// IsPocketTTSError implements PocketTTSError.
func (e *DuplicateToolError) IsPocketTTSError() bool { return true }

// InvalidArgumentsError indicates tool arguments did not match the input schema.
type InvalidArgumentsError struct {
	Tool string
	Err  error
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Err)
}

func (e *InvalidArgumentsError) Unwrap() error {
	return e.Err
}

// IsPocketTTSError implements PocketTTSError.
func (e *InvalidArgumentsError) IsPocketTTSError() bool { return true }

// HandlerPanicError carries a panic recovered from a tool handler.
type HandlerPanicError struct {
	Tool  string
	Value any
}

func (e *HandlerPanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}

	return fmt.Sprint(e.Value)
}

func (e *HandlerPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}

// IsPocketTTSError implements PocketTTSError.
func (e *HandlerPanicError) IsPocketTTSError() bool { return true }
