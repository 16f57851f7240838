package pockettts

import "github.com/bjkemp/pocket-tts/internal/errors"

// Re-export error types from internal package

// PocketTTSError is the base interface for all server errors.
type PocketTTSError = errors.PocketTTSError

// ProgramNotFoundError indicates an external program could not be located.
type ProgramNotFoundError = errors.ProgramNotFoundError

// ProgramStartError indicates an external program could not be started.
type ProgramStartError = errors.ProgramStartError

// ProcessError indicates an external program exited with a non-zero status.
type ProcessError = errors.ProcessError

// UnknownToolError indicates a call named a tool that is not registered.
type UnknownToolError = errors.UnknownToolError

// InvalidArgumentsError indicates tool arguments failed schema validation.
type InvalidArgumentsError = errors.InvalidArgumentsError
