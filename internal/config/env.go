package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the configuration read from POCKET_TTS_* environment variables.
type Env struct {
	EnginePath  string        `env:"ENGINE"`
	EngineArgs  []string      `env:"ENGINE_ARGS"  envSeparator:" "`
	HelperPath  string        `env:"SAY"`
	WorkingDir  string        `env:"WORKDIR"`
	LogLevel    slog.Level    `env:"LOG_LEVEL"    envDefault:"info"`
	CallTimeout time.Duration `env:"CALL_TIMEOUT" envDefault:"0s"`
	Validate    bool          `env:"VALIDATE"     envDefault:"true"`
}

// EnvPrefix is prepended to every variable name of Env.
const EnvPrefix = "POCKET_TTS_"

// LoadEnv reads Env from the process environment.
func LoadEnv() (*Env, error) {
	return parseEnv(env.Options{Prefix: EnvPrefix})
}

// LoadEnvFrom reads Env from vars instead of the process environment.
func LoadEnvFrom(vars map[string]string) (*Env, error) {
	return parseEnv(env.Options{Prefix: EnvPrefix, Environment: vars})
}

func parseEnv(opts env.Options) (*Env, error) {
	cfg, err := env.ParseAsWithOptions[Env](opts)
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.CallTimeout < 0 {
		return nil, fmt.Errorf("parse environment: %sCALL_TIMEOUT must not be negative", EnvPrefix)
	}

	return &cfg, nil
}

// Apply copies the environment settings onto opts. Empty paths leave the
// corresponding option untouched.
func (e *Env) Apply(opts *Options) {
	if e.EnginePath != "" {
		opts.EnginePath = e.EnginePath
		opts.EngineArgs = e.EngineArgs
	}

	if e.HelperPath != "" {
		opts.HelperPath = e.HelperPath
	}

	if e.WorkingDir != "" {
		opts.WorkingDir = e.WorkingDir
	}

	opts.CallTimeout = e.CallTimeout
	opts.Validate = e.Validate
}
