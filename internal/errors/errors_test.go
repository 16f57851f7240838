package errors

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgramNotFoundError(t *testing.T) {
	err := &ProgramNotFoundError{
		Program:       "pocket-tts",
		SearchedPaths: []string{"$PATH", "/usr/local/bin/pocket-tts"},
	}

	require.Equal(
		t,
		"pocket-tts not found in: [$PATH /usr/local/bin/pocket-tts]",
		err.Error(),
	)
	require.True(t, err.IsPocketTTSError())
}

func TestProgramStartError(t *testing.T) {
	err := &ProgramStartError{Program: "pocket-say", Err: exec.ErrNotFound}

	require.Equal(t, "failed to start pocket-say: executable file not found in $PATH", err.Error())
	require.ErrorIs(t, err, exec.ErrNotFound)
	require.True(t, err.IsPocketTTSError())
}

func TestProcessError(t *testing.T) {
	t.Run("with stderr", func(t *testing.T) {
		err := &ProcessError{Program: "pocket-tts", ExitCode: 2, Stderr: "bad voice\n"}

		require.Equal(t, "pocket-tts exited with status 2: bad voice", err.Error())
		require.True(t, err.IsPocketTTSError())
	})

	t.Run("without stderr", func(t *testing.T) {
		err := &ProcessError{Program: "pocket-tts", ExitCode: 1}

		require.Equal(t, "pocket-tts exited with status 1", err.Error())
	})
}

func TestUnknownToolError(t *testing.T) {
	err := &UnknownToolError{Name: "nonexistent_tool"}

	require.Equal(t, "Unknown tool: nonexistent_tool", err.Error())

	target, ok := errors.AsType[*UnknownToolError](error(err))
	require.True(t, ok)
	require.Equal(t, "nonexistent_tool", target.Name)
}

func TestInvalidArgumentsError(t *testing.T) {
	root := errors.New(`missing properties: ["text"]`)
	err := &InvalidArgumentsError{Tool: "say", Err: root}

	require.Equal(t, `invalid arguments for say: missing properties: ["text"]`, err.Error())
	require.ErrorIs(t, err, root)
	require.True(t, err.IsPocketTTSError())
}

func TestHandlerPanicError(t *testing.T) {
	t.Run("error value", func(t *testing.T) {
		root := errors.New("nil map write")
		err := &HandlerPanicError{Tool: "say", Value: root}

		require.Equal(t, "nil map write", err.Error())
		require.ErrorIs(t, err, root)
	})

	t.Run("string value", func(t *testing.T) {
		err := &HandlerPanicError{Tool: "say", Value: "boom"}

		require.Equal(t, "boom", err.Error())
		require.NoError(t, err.Unwrap())
	})
}
