package pockettts

import (
	"log/slog"
	"time"

	"github.com/bjkemp/pocket-tts/internal/config"
	"github.com/bjkemp/pocket-tts/internal/subprocess"
)

// Option configures a Server using the functional options pattern.
type Option func(*config.Options)

// Runner launches external programs. Implementations must be safe for
// concurrent use.
type Runner = subprocess.Runner

// ProcessResult is the captured outcome of one program invocation.
type ProcessResult = subprocess.Result

// applyOptions applies functional options on top of the defaults.
func applyOptions(opts []Option) *config.Options {
	options := config.Default()
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *config.Options) {
		o.Logger = logger
	}
}

// WithEnginePath sets the explicit path to the pocket-tts engine.
// If not set, the engine is searched for.
func WithEnginePath(path string) Option {
	return func(o *config.Options) {
		o.EnginePath = path
	}
}

// WithEngineArgs sets arguments placed before every engine sub-command.
// Only used together with WithEnginePath, e.g. WithEnginePath("uv") and
// WithEngineArgs("run", "pocket-tts").
func WithEngineArgs(args ...string) Option {
	return func(o *config.Options) {
		o.EngineArgs = args
	}
}

// WithHelperPath sets the explicit path to the pocket-say playback helper.
func WithHelperPath(path string) Option {
	return func(o *config.Options) {
		o.HelperPath = path
	}
}

// WithWorkingDir sets the working directory for launched programs.
func WithWorkingDir(dir string) Option {
	return func(o *config.Options) {
		o.WorkingDir = dir
	}
}

// WithEnv provides additional environment variables for launched programs.
func WithEnv(env map[string]string) Option {
	return func(o *config.Options) {
		o.Env = env
	}
}

// WithCallTimeout bounds every tool call. The child process is killed when
// the timeout elapses. Zero, the default, means no timeout.
func WithCallTimeout(timeout time.Duration) Option {
	return func(o *config.Options) {
		o.CallTimeout = timeout
	}
}

// WithValidation toggles argument validation against the tools' input
// schemas. Enabled by default; when disabled, arguments reach the tools
// exactly as sent.
func WithValidation(enabled bool) Option {
	return func(o *config.Options) {
		o.Validate = enabled
	}
}

// WithRunner replaces the process runner.
func WithRunner(runner Runner) Option {
	return func(o *config.Options) {
		o.Runner = runner
	}
}

// EnvConfig is the configuration read from POCKET_TTS_* environment variables.
type EnvConfig = config.Env

// LoadEnv reads EnvConfig from the process environment.
func LoadEnv() (*EnvConfig, error) {
	return config.LoadEnv()
}

// WithConfig applies settings loaded from POCKET_TTS_* environment variables.
func WithConfig(env *EnvConfig) Option {
	return func(o *config.Options) {
		env.Apply(o)
	}
}
