package pockettts

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bjkemp/pocket-tts/internal/command"
	"github.com/bjkemp/pocket-tts/internal/config"
	"github.com/bjkemp/pocket-tts/internal/discovery"
	"github.com/bjkemp/pocket-tts/internal/errors"
	"github.com/bjkemp/pocket-tts/internal/mcp"
	"github.com/bjkemp/pocket-tts/internal/speech"
	"github.com/bjkemp/pocket-tts/internal/subprocess"
)

const (
	// ServerName is the implementation name reported during initialization.
	ServerName = "pocket-tts"

	// ServerVersion is the implementation version reported during initialization.
	ServerVersion = "1.0.0"
)

const instructions = "Text-to-speech tools backed by the Pocket TTS engine. " +
	"Call list_voices to see the predefined voices, generate_audio to render a .wav file, " +
	"say to play speech immediately, and export_voice to turn a voice sample into a reusable embedding."

// Server is a Pocket TTS MCP server.
//
// A Server can serve any number of sessions; every session shares the same
// tool registry and launches its own child processes per call.
type Server struct {
	log        *slog.Logger
	dispatcher *mcp.Dispatcher
	sdk        *mcpsdk.Server
}

// NewServer discovers the external programs and builds a server exposing
// the list_voices, generate_audio, say and export_voice tools.
//
// A program set explicitly with WithEnginePath or WithHelperPath must exist.
// A program that is merely not found by the search is reported with a warning
// and invoked by its bare name, so the affected tools answer with an error
// result instead of preventing startup.
func NewServer(opts ...Option) (*Server, error) {
	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	disc := discovery.New(&discovery.Config{
		EnginePath: options.EnginePath,
		EngineArgs: options.EngineArgs,
		HelperPath: options.HelperPath,
		Logger:     log,
	})

	engine, err := locate(log, disc.Engine, options.EnginePath, discovery.EngineName)
	if err != nil {
		return nil, err
	}

	helper, err := locate(log, disc.Helper, options.HelperPath, discovery.HelperName)
	if err != nil {
		return nil, err
	}

	runner := options.Runner
	if runner == nil {
		runner = newExecRunner(log, options)
	}

	tools := speech.NewToolset(log, runner, speech.Config{Engine: engine, Helper: helper})

	registry, err := mcp.NewRegistry(tools.Tools()...)
	if err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}

	dispatcher := mcp.NewDispatcher(log, registry, &mcp.DispatcherOptions{
		Validate:    options.Validate,
		CallTimeout: options.CallTimeout,
	})

	sdk := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcpsdk.ServerOptions{
		Instructions: instructions,
		Logger:       log.With("component", "session"),
	})
	dispatcher.Mount(sdk)

	log.Debug("Server configured",
		"engine", engine.String(),
		"helper", helper.String(),
		"tools", registry.Len(),
		"validate", options.Validate,
		"call_timeout", options.CallTimeout,
	)

	return &Server{
		log:        log.With("component", "server"),
		dispatcher: dispatcher,
		sdk:        sdk,
	}, nil
}

// Run serves one session over transport until the client disconnects or ctx
// is canceled.
func (s *Server) Run(ctx context.Context, transport mcpsdk.Transport) error {
	s.log.Debug("Session starting")

	if err := s.sdk.Run(ctx, transport); err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("serve session: %w", err)
	}

	return nil
}

// MCPServer returns the underlying protocol server, e.g. for serving over a
// transport other than stdio.
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.sdk
}

// Tools returns the advertised tool definitions in registration order.
func (s *Server) Tools() []*mcpsdk.Tool {
	return s.dispatcher.List()
}

// CallTool invokes a tool directly, bypassing any transport.
// An unknown name returns *UnknownToolError; all other failures are
// reported through the result's IsError flag.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*mcpsdk.CallToolResult, error) {
	return s.dispatcher.Call(ctx, name, args)
}

// RunStdio builds a server and serves a single session over stdin/stdout.
func RunStdio(ctx context.Context, opts ...Option) error {
	server, err := NewServer(opts...)
	if err != nil {
		return err
	}

	server.log.Info("Pocket TTS MCP Server running on stdio")

	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func locate(
	log *slog.Logger,
	find func() (command.Program, error),
	explicit, name string,
) (command.Program, error) {
	prog, err := find()
	if err == nil {
		return prog, nil
	}

	if explicit != "" {
		return command.Program{}, err
	}

	if _, ok := stderrors.AsType[*errors.ProgramNotFoundError](err); !ok {
		return command.Program{}, err
	}

	log.Warn("Program not found, tools using it will fail", "program", name, "error", err)

	return command.Program{Path: name}, nil
}

func newExecRunner(log *slog.Logger, options *config.Options) *subprocess.ExecRunner {
	programLog := log.With("component", "program")

	return subprocess.NewExecRunner(log, &subprocess.Config{
		Dir: options.WorkingDir,
		Env: options.Env,
		StderrLine: func(program, line string) {
			programLog.Debug(line, "program", program)
		},
	})
}
