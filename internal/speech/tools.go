package speech

import (
	"context"
	"fmt"
	"log/slog"

	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bjkemp/pocket-tts/internal/command"
	"github.com/bjkemp/pocket-tts/internal/mcp"
	"github.com/bjkemp/pocket-tts/internal/subprocess"
	"github.com/bjkemp/pocket-tts/internal/voices"
)

// Tool names.
const (
	ToolListVoices    = "list_voices"
	ToolGenerateAudio = "generate_audio"
	ToolSay           = "say"
	ToolExportVoice   = "export_voice"
)

// DefaultOutputPath is where generate_audio writes when no path is given.
const DefaultOutputPath = "./tts_output.wav"

// Config holds the programs the tools drive.
type Config struct {
	// Engine is the synthesis engine.
	Engine command.Program

	// Helper is the playback helper used by say.
	Helper command.Program
}

// Toolset builds the Pocket TTS tool descriptors.
type Toolset struct {
	log    *slog.Logger
	runner subprocess.Runner
	cfg    Config
}

// NewToolset creates a toolset that launches programs through runner.
func NewToolset(log *slog.Logger, runner subprocess.Runner, cfg Config) *Toolset {
	return &Toolset{
		log:    log.With("component", "speech"),
		runner: runner,
		cfg:    cfg,
	}
}

// Tools returns the tool descriptors in advertised order.
func (s *Toolset) Tools() []mcp.Tool {
	voiceHelp := fmt.Sprintf(
		"The voice to use. Can be a predefined voice (%s) or a path to an audio file/safetensors embedding.",
		voices.Joined(),
	)

	return []mcp.Tool{
		mcp.NewDescriptor(ToolListVoices,
			"List all available predefined voices for text-to-speech generation.",
			mcp.ObjectSchema(),
			s.listVoices,
			mcp.WithTitle("List Voices"),
			mcp.WithAnnotations(&mcpgo.ToolAnnotations{
				ReadOnlyHint:   true,
				IdempotentHint: true,
				OpenWorldHint:  new(false),
			}),
		),
		mcp.NewDescriptor(ToolGenerateAudio,
			"Generate speech audio from text using a specified voice.",
			mcp.ObjectSchema(
				mcp.Property{
					Name:        "text",
					Type:        mcp.TypeString,
					Description: "The text to convert to speech.",
					Required:    true,
				},
				mcp.Property{
					Name:        "voice",
					Type:        mcp.TypeString,
					Description: voiceHelp,
					Default:     voices.Default,
				},
				mcp.Property{
					Name:        "output_path",
					Type:        mcp.TypeString,
					Description: "The path where the generated .wav file should be saved.",
					Default:     DefaultOutputPath,
				},
			),
			s.generateAudio,
			mcp.WithTitle("Generate Audio"),
			mcp.WithAnnotations(&mcpgo.ToolAnnotations{
				IdempotentHint: true,
				OpenWorldHint:  new(false),
			}),
		),
		mcp.NewDescriptor(ToolSay,
			"Generate and play speech audio from text immediately (macOS only).",
			mcp.ObjectSchema(
				mcp.Property{
					Name:        "text",
					Type:        mcp.TypeString,
					Description: "The text to convert to speech and play.",
					Required:    true,
				},
				mcp.Property{
					Name:        "voice",
					Type:        mcp.TypeString,
					Description: voiceHelp,
				},
			),
			s.say,
			mcp.WithTitle("Say"),
			mcp.WithAnnotations(&mcpgo.ToolAnnotations{
				DestructiveHint: new(false),
				OpenWorldHint:   new(true),
			}),
		),
		mcp.NewDescriptor(ToolExportVoice,
			"Export a voice embedding from an audio file to a .safetensors file for faster loading.",
			mcp.ObjectSchema(
				mcp.Property{
					Name:        "audio_path",
					Type:        mcp.TypeString,
					Description: "Path to the source audio file (e.g., .wav, .mp3).",
					Required:    true,
				},
				mcp.Property{
					Name:        "export_path",
					Type:        mcp.TypeString,
					Description: "Path where the .safetensors embedding should be saved.",
					Required:    true,
				},
				mcp.Property{
					Name:        "truncate",
					Type:        mcp.TypeBoolean,
					Description: "Whether to truncate long audio files.",
					Default:     false,
				},
			),
			s.exportVoice,
			mcp.WithTitle("Export Voice"),
			mcp.WithAnnotations(&mcpgo.ToolAnnotations{
				IdempotentHint: true,
				OpenWorldHint:  new(false),
			}),
		),
	}
}

// run launches prog with args and returns the captured result.
func (s *Toolset) run(ctx context.Context, prog command.Program, args []string) (*subprocess.Result, error) {
	path, argv := prog.Command(args...)

	s.log.Debug("Running program", "program", prog.String(), "args", args)

	return s.runner.Run(ctx, path, argv)
}

// outcome maps a process result onto the response envelope.
func outcome(prog command.Program, res *subprocess.Result, failure, success string) *mcpgo.CallToolResult {
	if !res.Failed() {
		return mcp.TextResult(success)
	}

	detail := res.Diagnostic()
	if detail == "" {
		detail = res.Err(prog.String()).Error()
	}

	return mcp.ErrorResult(failure + detail)
}
