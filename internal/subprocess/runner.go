package subprocess

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/bjkemp/pocket-tts/internal/errors"
)

const (
	// maxLineSize is the maximum stderr line length passed to the line callback.
	// Longer lines are still captured in full, only the callback skips them.
	maxLineSize = 1024 * 1024 // 1MB

	// defaultWaitDelay bounds how long output is drained after the program
	// exits or is killed.
	defaultWaitDelay = 2 * time.Second
)

// Result is the captured outcome of one program invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Failed reports whether the program exited with a non-zero status.
func (r *Result) Failed() bool {
	return r.ExitCode != 0
}

// Diagnostic returns the text best describing a failure: stderr, or stdout
// when stderr is empty.
func (r *Result) Diagnostic() string {
	if r.Stderr != "" {
		return r.Stderr
	}

	return r.Stdout
}

// Err returns a ProcessError for a failed result and nil otherwise.
func (r *Result) Err(program string) error {
	if !r.Failed() {
		return nil
	}

	return &errors.ProcessError{
		Program:  program,
		ExitCode: r.ExitCode,
		Stderr:   r.Stderr,
	}
}

// Runner launches external programs.
type Runner interface {
	// Run starts program with args and blocks until it exits.
	// The returned error is non-nil only when the program could not be
	// started or the context ended before it finished.
	Run(ctx context.Context, program string, args []string) (*Result, error)
}

// Config configures an ExecRunner.
type Config struct {
	// Dir is the working directory for child processes.
	// If empty, children inherit the server's working directory.
	Dir string

	// Env holds extra environment variables added on top of the server's
	// own environment.
	Env map[string]string

	// StderrLine, if set, receives each stderr line as it arrives.
	StderrLine func(program, line string)

	// WaitDelay bounds how long output is still read once the program has
	// exited or been killed while a descendant keeps its pipes open.
	// Zero means 2 seconds.
	WaitDelay time.Duration
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	log *slog.Logger
	cfg Config
}

// Compile-time verification that ExecRunner implements Runner.
var _ Runner = (*ExecRunner)(nil)

// NewExecRunner creates a runner. A nil cfg uses the zero Config.
func NewExecRunner(log *slog.Logger, cfg *Config) *ExecRunner {
	r := &ExecRunner{log: log.With("component", "runner")}
	if cfg != nil {
		r.cfg = *cfg
	}

	return r
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, program string, args []string) (*Result, error) {
	var (
		stdout bytes.Buffer
		stderr = &lineWriter{program: program, emit: r.cfg.StderrLine}
	)

	//nolint:gosec // G204: launching the configured engine with caller-built args is the purpose
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Dir = r.cfg.Dir
	cmd.Env = r.environment()
	cmd.Stdout = &stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = r.waitDelay()
	killProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		r.log.Error("Failed to start program", "program", program, "error", err)

		return nil, &errors.ProgramStartError{Program: program, Err: err}
	}

	r.log.Debug("Started program", "program", program, "pid", cmd.Process.Pid, "args", args)

	waitErr := cmd.Wait()
	stderr.flush()

	return r.finish(ctx, program, &Result{
		Stdout: stdout.String(),
		Stderr: stderr.buf.String(),
	}, waitErr)
}

// finish maps the outcome of Wait onto the result. The context error is
// reported only when the program did not exit on its own.
func (r *ExecRunner) finish(ctx context.Context, program string, result *Result, waitErr error) (*Result, error) {
	if waitErr == nil {
		r.log.Debug("Program exited", "program", program, "exit_code", 0)

		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		r.log.Debug("Program interrupted", "program", program, "error", ctxErr)

		return nil, fmt.Errorf("run %s: %w", program, ctxErr)
	}

	if exitErr, ok := stderrors.AsType[*exec.ExitError](waitErr); ok {
		result.ExitCode = exitErr.ExitCode()

		r.log.Debug("Program exited", "program", program, "exit_code", result.ExitCode)

		return result, nil
	}

	// The program exited cleanly but a descendant kept its output open.
	if stderrors.Is(waitErr, exec.ErrWaitDelay) {
		r.log.Warn("Output left open after exit", "program", program, "wait_delay", r.waitDelay())

		return result, nil
	}

	return nil, fmt.Errorf("wait for %s: %w", program, waitErr)
}

func (r *ExecRunner) waitDelay() time.Duration {
	if r.cfg.WaitDelay > 0 {
		return r.cfg.WaitDelay
	}

	return defaultWaitDelay
}

// lineWriter captures stderr and feeds complete lines to emit.
// os/exec copies each stream from a single goroutine, so no locking is needed.
type lineWriter struct {
	program string
	emit    func(program, line string)
	buf     strings.Builder
	pending []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)

	if w.emit == nil {
		return len(p), nil
	}

	w.pending = append(w.pending, p...)

	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}

		w.send(w.pending[:i])
		w.pending = w.pending[i+1:]
	}

	// Lines longer than maxLineSize are captured but not emitted.
	if len(w.pending) > maxLineSize {
		w.pending = w.pending[:0]
	}

	return len(p), nil
}

// flush emits a trailing line that had no newline.
func (w *lineWriter) flush() {
	if w.emit != nil && len(w.pending) > 0 {
		w.send(w.pending)
		w.pending = nil
	}
}

func (w *lineWriter) send(line []byte) {
	if len(line) > maxLineSize {
		return
	}

	w.emit(w.program, strings.TrimSuffix(string(line), "\r"))
}

// environment returns nil to inherit the parent environment when no extra
// variables are configured.
func (r *ExecRunner) environment() []string {
	if len(r.cfg.Env) == 0 {
		return nil
	}

	env := os.Environ()
	for _, key := range slices.Sorted(maps.Keys(r.cfg.Env)) {
		env = append(env, key+"="+r.cfg.Env[key])
	}

	return env
}
