package mcp

import (
	"context"
	stderrors "errors"
	"log/slog"
	"maps"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"

	"github.com/bjkemp/pocket-tts/internal/errors"
)

// methodListTools is the MCP method answered directly from the registry.
const methodListTools = "tools/list"

// DispatcherOptions configures a Dispatcher.
type DispatcherOptions struct {
	// Validate enables validating and defaulting arguments against the tool's
	// input schema before the handler runs. When false, arguments reach the
	// handler exactly as the client sent them.
	Validate bool

	// CallTimeout bounds each tool call. Zero means no timeout.
	CallTimeout time.Duration
}

// Dispatcher resolves list and call requests against a Registry.
//
// It holds no per-call state; concurrent calls are independent.
type Dispatcher struct {
	log      *slog.Logger
	registry *Registry
	opts     DispatcherOptions
}

// NewDispatcher creates a dispatcher over registry. A nil opts disables
// validation and timeouts.
func NewDispatcher(log *slog.Logger, registry *Registry, opts *DispatcherOptions) *Dispatcher {
	d := &Dispatcher{
		log:      log.With("component", "dispatcher"),
		registry: registry,
	}

	if opts != nil {
		d.opts = *opts
	}

	return d
}

// List returns the registry's advertised tools in registration order.
func (d *Dispatcher) List() []*mcp.Tool {
	return d.registry.List()
}

// Call executes the named tool.
//
// An unknown name returns *errors.UnknownToolError. Every other failure,
// including invalid arguments, handler errors and handler panics, is returned
// as a result with IsError set and a non-empty text message.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	e, ok := d.registry.lookup(name)
	if !ok {
		d.log.Warn("Call for unknown tool", "tool", name)

		return nil, &errors.UnknownToolError{Name: name}
	}

	log := d.log.With("tool", name, "call_id", ulid.Make().String())
	start := time.Now()

	log.Debug("Dispatching tool call")

	prepared, err := d.prepare(e, name, args)
	if err != nil {
		log.Info("Rejected tool arguments", "error", err)

		return ErrorResult("Error: " + err.Error()), nil
	}

	if d.opts.CallTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, d.opts.CallTimeout)
		defer cancel()
	}

	result, err := invoke(ctx, e.tool, prepared)
	if err != nil {
		if _, ok := stderrors.AsType[*errors.HandlerPanicError](err); ok {
			log.Error("Tool handler panicked", "error", err)
		} else {
			log.Warn("Tool handler failed", "error", err)
		}

		result = ErrorResult("Error: " + err.Error())
	}

	result = normalize(result)

	log.Info("Tool call completed",
		"is_error", result.IsError,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}

// CallRequest executes a tool call received from an MCP session.
// Its signature matches mcp.ToolHandler.
func (d *Dispatcher) CallRequest(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var name string
	if req != nil && req.Params != nil {
		name = req.Params.Name
	}

	if _, ok := d.registry.lookup(name); !ok {
		return nil, &errors.UnknownToolError{Name: name}
	}

	args, err := ParseArguments(req)
	if err != nil {
		//nolint:nilerr // Intentionally return nil error - error is encoded in the result
		return ErrorResult("Error: " + (&errors.InvalidArgumentsError{Tool: name, Err: err}).Error()), nil
	}

	return d.Call(ctx, name, args)
}

// Mount registers every tool with server and answers the session's
// tools/list requests in registration order.
func (d *Dispatcher) Mount(server *mcp.Server) {
	for _, e := range d.registry.entries {
		server.AddTool(definition(e.tool), d.CallRequest)
	}

	server.AddReceivingMiddleware(d.middleware)
}

func (d *Dispatcher) middleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		d.log.Debug("Received request", "method", method)

		if method == methodListTools {
			return &mcp.ListToolsResult{Tools: d.List()}, nil
		}

		return next(ctx, method, req)
	}
}

// prepare copies args and, when validation is enabled, applies schema
// defaults and validates the result.
func (d *Dispatcher) prepare(e *entry, name string, args map[string]any) (map[string]any, error) {
	prepared := maps.Clone(args)
	if prepared == nil {
		prepared = make(map[string]any)
	}

	if !d.opts.Validate {
		return prepared, nil
	}

	if err := e.resolved.ApplyDefaults(&prepared); err != nil {
		return nil, &errors.InvalidArgumentsError{Tool: name, Err: err}
	}

	if err := e.resolved.Validate(&prepared); err != nil {
		return nil, &errors.InvalidArgumentsError{Tool: name, Err: err}
	}

	return prepared, nil
}

// invoke runs the tool, converting a panic into a HandlerPanicError.
func invoke(ctx context.Context, t Tool, args map[string]any) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &errors.HandlerPanicError{Tool: t.Name(), Value: r}
		}
	}()

	return t.Invoke(ctx, args)
}

// normalize guarantees a result with at least one content entry.
func normalize(result *mcp.CallToolResult) *mcp.CallToolResult {
	if result == nil || len(result.Content) == 0 {
		return ErrorResult("Error: " + errors.ErrEmptyResult.Error())
	}

	return result
}
