//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	pockettts "github.com/bjkemp/pocket-tts"
)

// newServer builds a server against the installed engine and skips the test
// when the engine is not available.
func newServer(t *testing.T, opts ...pockettts.Option) *pockettts.Server {
	t.Helper()

	if _, err := exec.LookPath("pocket-tts"); err != nil {
		if _, err := exec.LookPath("uv"); err != nil {
			t.Skip("pocket-tts engine not installed")
		}
	}

	server, err := pockettts.NewServer(opts...)
	if _, ok := errors.AsType[*pockettts.ProgramNotFoundError](err); ok {
		t.Skip("pocket-tts engine not installed")
	}

	require.NoError(t, err)

	return server
}

func resultText(t *testing.T, result *mcpsdk.CallToolResult) string {
	t.Helper()

	var sb strings.Builder

	for _, c := range result.Content {
		text, ok := c.(*mcpsdk.TextContent)
		require.True(t, ok)
		sb.WriteString(text.Text)
	}

	return sb.String()
}

// TestGenerateAudio_WritesWav tests rendering text to a .wav file with the real engine.
func TestGenerateAudio_WritesWav(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	server := newServer(t)
	out := filepath.Join(t.TempDir(), "hello.wav")

	result, err := server.CallTool(ctx, "generate_audio", map[string]any{
		"text":        "Hello from the integration suite.",
		"output_path": out,
	})
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	info, err := os.Stat(out)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

// TestGenerateAudio_UnknownVoiceFile tests that engine failures surface as error results.
func TestGenerateAudio_UnknownVoiceFile(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	server := newServer(t)

	result, err := server.CallTool(ctx, "generate_audio", map[string]any{
		"text":        "This should fail.",
		"voice":       filepath.Join(t.TempDir(), "missing.wav"),
		"output_path": filepath.Join(t.TempDir(), "out.wav"),
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.True(t, strings.HasPrefix(resultText(t, result), "Error generating audio: "))
}

// TestExportVoice_RoundTrip tests exporting an embedding and generating with it.
func TestExportVoice_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	server := newServer(t)
	dir := t.TempDir()
	sample := filepath.Join(dir, "sample.wav")
	embedding := filepath.Join(dir, "sample.safetensors")

	result, err := server.CallTool(ctx, "generate_audio", map[string]any{
		"text":        "A short sample to clone.",
		"voice":       "cosette",
		"output_path": sample,
	})
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	result, err = server.CallTool(ctx, "export_voice", map[string]any{
		"audio_path":  sample,
		"export_path": embedding,
		"truncate":    true,
	})
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	require.FileExists(t, embedding)

	result, err = server.CallTool(ctx, "generate_audio", map[string]any{
		"text":        "Speaking with the exported voice.",
		"voice":       embedding,
		"output_path": filepath.Join(dir, "cloned.wav"),
	})
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
}

// TestSay_Plays tests immediate playback through the helper on macOS.
func TestSay_Plays(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("playback helper is macOS only")
	}

	if _, err := exec.LookPath("pocket-say"); err != nil {
		t.Skip("pocket-say helper not installed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	server := newServer(t)

	result, err := server.CallTool(ctx, "say", map[string]any{"text": "Integration test."})
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
}
