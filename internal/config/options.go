package config

import (
	"log/slog"
	"time"

	"github.com/bjkemp/pocket-tts/internal/subprocess"
)

// Options configures the Pocket TTS server.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// EnginePath is an explicit path to the pocket-tts synthesis engine.
	// If empty, the engine is located on PATH, in well-known install
	// directories, or through uv.
	EnginePath string

	// EngineArgs are placed before every engine sub-command when EnginePath
	// is set, e.g. "run pocket-tts" when EnginePath is uv.
	EngineArgs []string

	// HelperPath is an explicit path to the pocket-say playback helper.
	// If empty, the helper is looked up next to the server executable and
	// then on PATH.
	HelperPath string

	// WorkingDir is the working directory for launched programs. Relative
	// output paths resolve against it.
	WorkingDir string

	// Env holds extra environment variables for launched programs.
	Env map[string]string

	// CallTimeout bounds every tool call. Zero means no timeout.
	CallTimeout time.Duration

	// Validate enables argument validation and defaulting against each
	// tool's input schema.
	Validate bool

	// Runner overrides how external programs are launched.
	// If nil, programs run as child processes.
	Runner subprocess.Runner
}

// Default returns Options with validation enabled.
func Default() *Options {
	return &Options{Validate: true}
}
