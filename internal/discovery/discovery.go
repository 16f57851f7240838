package discovery

import (
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bjkemp/pocket-tts/internal/command"
	"github.com/bjkemp/pocket-tts/internal/errors"
)

const (
	// EngineName is the executable name of the synthesis engine.
	EngineName = "pocket-tts"

	// HelperName is the executable name of the playback helper.
	HelperName = "pocket-say"

	// uvName is the Python project runner used when the engine is not
	// installed as a standalone executable.
	uvName = "uv"
)

// Config holds configuration for program discovery.
type Config struct {
	// EnginePath is an explicit engine path that skips the search.
	EnginePath string

	// EngineArgs are arguments placed before every engine sub-command,
	// used together with EnginePath (e.g. "run pocket-tts" for uv).
	EngineArgs []string

	// HelperPath is an explicit playback helper path that skips the search.
	HelperPath string

	// ExecutableDir overrides the directory searched for the helper.
	// If empty, the directory of the running executable is used.
	ExecutableDir string

	// Logger is an optional logger for discovery operations.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Discoverer locates the synthesis engine and the playback helper.
type Discoverer interface {
	// Engine locates the synthesis engine.
	Engine() (command.Program, error)
	// Helper locates the playback helper.
	Helper() (command.Program, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	cfg *Config
	log *slog.Logger
}

// Compile-time verification that discoverer implements Discoverer.
var _ Discoverer = (*discoverer)(nil)

// New creates a discoverer with the given configuration.
func New(cfg *Config) Discoverer {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &discoverer{
		cfg: cfg,
		log: log.With("component", "discovery"),
	}
}

// Engine implements Discoverer.
func (d *discoverer) Engine() (command.Program, error) {
	if d.cfg.EnginePath != "" {
		d.log.Debug("Using explicit engine path", "path", d.cfg.EnginePath)

		path, err := resolveExplicit(d.cfg.EnginePath)
		if err != nil {
			return command.Program{}, &errors.ProgramNotFoundError{
				Program:       EngineName,
				SearchedPaths: []string{d.cfg.EnginePath},
			}
		}

		return command.Program{Path: path, Prefix: d.cfg.EngineArgs}, nil
	}

	searched := make([]string, 0, 4)

	if path, err := exec.LookPath(EngineName); err == nil {
		d.log.Debug("Found engine in PATH", "path", path)

		return command.Program{Path: path}, nil
	}

	searched = append(searched, "$PATH")

	for _, path := range commonEnginePaths() {
		searched = append(searched, path)

		if isExecutable(path) {
			d.log.Debug("Found engine at common path", "path", path)

			return command.Program{Path: path}, nil
		}
	}

	if path, err := exec.LookPath(uvName); err == nil {
		d.log.Debug("Running engine through uv", "path", path)

		return command.Program{Path: path, Prefix: []string{"run", EngineName}}, nil
	}

	searched = append(searched, "$PATH ("+uvName+")")

	d.log.Warn("Engine not found in any searched paths", "searched_paths", searched)

	return command.Program{}, &errors.ProgramNotFoundError{Program: EngineName, SearchedPaths: searched}
}

// Helper implements Discoverer.
func (d *discoverer) Helper() (command.Program, error) {
	if d.cfg.HelperPath != "" {
		d.log.Debug("Using explicit helper path", "path", d.cfg.HelperPath)

		path, err := resolveExplicit(d.cfg.HelperPath)
		if err != nil {
			return command.Program{}, &errors.ProgramNotFoundError{
				Program:       HelperName,
				SearchedPaths: []string{d.cfg.HelperPath},
			}
		}

		return command.Program{Path: path}, nil
	}

	searched := make([]string, 0, 2)

	if dir := d.executableDir(); dir != "" {
		path := filepath.Join(dir, HelperName)
		searched = append(searched, path)

		if isExecutable(path) {
			d.log.Debug("Found helper next to executable", "path", path)

			return command.Program{Path: path}, nil
		}
	}

	if path, err := exec.LookPath(HelperName); err == nil {
		d.log.Debug("Found helper in PATH", "path", path)

		return command.Program{Path: path}, nil
	}

	searched = append(searched, "$PATH")

	d.log.Warn("Playback helper not found", "searched_paths", searched)

	return command.Program{}, &errors.ProgramNotFoundError{Program: HelperName, SearchedPaths: searched}
}

func (d *discoverer) executableDir() string {
	if d.cfg.ExecutableDir != "" {
		return d.cfg.ExecutableDir
	}

	exe, err := os.Executable()
	if err != nil {
		return ""
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe)
}

// resolveExplicit accepts a path or a bare name to look up in PATH.
func resolveExplicit(path string) (string, error) {
	if !strings.ContainsRune(path, filepath.Separator) {
		return exec.LookPath(path)
	}

	if _, err := os.Stat(path); err != nil {
		return "", err
	}

	return path, nil
}

func commonEnginePaths() []string {
	paths := []string{"/usr/local/bin/" + EngineName}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".local/bin", EngineName))
	}

	return paths
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	return info.Mode()&0o111 != 0
}
