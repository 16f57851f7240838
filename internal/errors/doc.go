// Package errors defines error types for the Pocket TTS MCP server.
//
// This package provides structured error types for the failure scenarios of
// locating and launching external programs and of dispatching tool calls.
// All error types support error unwrapping and can be checked using
// errors.Is, errors.As, and errors.AsType.
package errors
