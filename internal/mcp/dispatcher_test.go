package mcp

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/bjkemp/pocket-tts/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// captureTool records the arguments it receives.
func captureTool(name string, schema Property, got *map[string]any) *Descriptor {
	return NewDescriptor(name, "captures arguments", ObjectSchema(schema),
		func(_ context.Context, args map[string]any) (*mcpgo.CallToolResult, error) {
			*got = args

			return TextResult("ok"), nil
		},
	)
}

func newTestDispatcher(t *testing.T, validate bool, tools ...Tool) *Dispatcher {
	t.Helper()

	registry, err := NewRegistry(tools...)
	require.NoError(t, err)

	return NewDispatcher(discardLogger(), registry, &DispatcherOptions{Validate: validate})
}

func TestDispatcher_UnknownTool(t *testing.T) {
	d := newTestDispatcher(t, true, echoTool("say"))

	result, err := d.Call(context.Background(), "nonexistent_tool", map[string]any{})
	require.Nil(t, result)

	unknown, ok := stderrors.AsType[*errors.UnknownToolError](err)
	require.True(t, ok)
	require.Equal(t, "nonexistent_tool", unknown.Name)
}

func TestDispatcher_CallsHandler(t *testing.T) {
	d := newTestDispatcher(t, true, echoTool("say"))

	result, err := d.Call(context.Background(), "say", map[string]any{"text": "hello"})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, "say: hello", ResultText(result))
}

func TestDispatcher_ValidationRejectsMissingRequired(t *testing.T) {
	var called atomic.Bool

	tool := NewDescriptor("say", "speaks",
		ObjectSchema(Property{Name: "text", Type: TypeString, Required: true}),
		func(context.Context, map[string]any) (*mcpgo.CallToolResult, error) {
			called.Store(true)

			return TextResult("ok"), nil
		},
	)

	d := newTestDispatcher(t, true, tool)

	result, err := d.Call(context.Background(), "say", map[string]any{})
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, ResultText(result), "invalid arguments for say")
	require.Contains(t, ResultText(result), "text")
	require.False(t, called.Load(), "handler must not run on invalid arguments")
}

func TestDispatcher_ValidationRejectsWrongType(t *testing.T) {
	var got map[string]any

	d := newTestDispatcher(t, true,
		captureTool("export_voice", Property{Name: "truncate", Type: TypeBoolean, Default: false}, &got))

	result, err := d.Call(context.Background(), "export_voice", map[string]any{"truncate": "yes"})
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Nil(t, got)
}

func TestDispatcher_AppliesDefaults(t *testing.T) {
	var got map[string]any

	d := newTestDispatcher(t, true,
		captureTool("generate_audio", Property{Name: "voice", Type: TypeString, Default: "alba"}, &got))

	args := map[string]any{}

	result, err := d.Call(context.Background(), "generate_audio", args)
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, map[string]any{"voice": "alba"}, got)
	require.Empty(t, args, "caller's map must not be modified")
}

func TestDispatcher_WithoutValidationPassesArgumentsThrough(t *testing.T) {
	var got map[string]any

	d := newTestDispatcher(t, false,
		captureTool("generate_audio", Property{Name: "voice", Type: TypeString, Default: "alba", Required: true}, &got))

	result, err := d.Call(context.Background(), "generate_audio", map[string]any{"extra": 1.0})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, map[string]any{"extra": 1.0}, got)
}

func TestDispatcher_HandlerErrorBecomesErrorResult(t *testing.T) {
	tool := NewDescriptor("fails", "always fails", ObjectSchema(),
		func(context.Context, map[string]any) (*mcpgo.CallToolResult, error) {
			return nil, stderrors.New("boom")
		},
	)

	d := newTestDispatcher(t, true, tool)

	result, err := d.Call(context.Background(), "fails", nil)
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, "Error: boom", ResultText(result))
}

func TestDispatcher_HandlerPanicBecomesErrorResult(t *testing.T) {
	tool := NewDescriptor("panics", "always panics", ObjectSchema(),
		func(context.Context, map[string]any) (*mcpgo.CallToolResult, error) {
			var m map[string]int
			m["x"] = 1

			return TextResult("unreachable"), nil
		},
	)

	d := newTestDispatcher(t, true, tool)

	result, err := d.Call(context.Background(), "panics", nil)
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, ResultText(result), "Error: assignment to entry in nil map")
}

func TestDispatcher_EmptyResultsAreNormalized(t *testing.T) {
	tests := []struct {
		name   string
		result *mcpgo.CallToolResult
	}{
		{name: "nil result", result: nil},
		{name: "no content", result: &mcpgo.CallToolResult{}},
		{name: "error without content", result: &mcpgo.CallToolResult{IsError: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewDescriptor("empty", "returns nothing", ObjectSchema(),
				func(context.Context, map[string]any) (*mcpgo.CallToolResult, error) {
					return tt.result, nil
				},
			)

			d := newTestDispatcher(t, true, tool)

			result, err := d.Call(context.Background(), "empty", nil)
			require.NoError(t, err)
			require.True(t, result.IsError)
			require.NotEmpty(t, result.Content)
			require.Contains(t, ResultText(result), errors.ErrEmptyResult.Error())
		})
	}
}

func TestDispatcher_CallTimeout(t *testing.T) {
	tool := NewDescriptor("slow", "waits for cancellation", ObjectSchema(),
		func(ctx context.Context, _ map[string]any) (*mcpgo.CallToolResult, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		},
	)

	registry, err := NewRegistry(tool)
	require.NoError(t, err)

	d := NewDispatcher(discardLogger(), registry, &DispatcherOptions{CallTimeout: 50 * time.Millisecond})

	result, err := d.Call(context.Background(), "slow", nil)
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, ResultText(result), context.DeadlineExceeded.Error())
}

func TestDispatcher_ConcurrentCallsDoNotBlockEachOther(t *testing.T) {
	started := make(chan string, 2)
	release := make(chan struct{})

	blocking := func(name string) *Descriptor {
		return NewDescriptor(name, "blocks until released", ObjectSchema(),
			func(context.Context, map[string]any) (*mcpgo.CallToolResult, error) {
				started <- name
				<-release

				return TextResult(name + " done"), nil
			},
		)
	}

	d := newTestDispatcher(t, true, blocking("first"), blocking("second"))

	var g errgroup.Group

	for _, name := range []string{"first", "second"} {
		g.Go(func() error {
			_, err := d.Call(context.Background(), name, nil)

			return err
		})
	}

	seen := map[string]bool{}

	for range 2 {
		select {
		case name := <-started:
			seen[name] = true
		case <-time.After(5 * time.Second):
			t.Fatal("both handlers should be running at the same time")
		}
	}

	close(release)
	require.NoError(t, g.Wait())
	require.Equal(t, map[string]bool{"first": true, "second": true}, seen)
}
