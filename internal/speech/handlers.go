package speech

import (
	"context"
	"fmt"

	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bjkemp/pocket-tts/internal/command"
	"github.com/bjkemp/pocket-tts/internal/mcp"
	"github.com/bjkemp/pocket-tts/internal/voices"
)

// GenerateAudioInput is the argument set of generate_audio.
type GenerateAudioInput struct {
	Text       string `json:"text"`
	Voice      string `json:"voice,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
}

// SayInput is the argument set of say.
type SayInput struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

// ExportVoiceInput is the argument set of export_voice.
type ExportVoiceInput struct {
	AudioPath  string `json:"audio_path"`
	ExportPath string `json:"export_path"`
	Truncate   bool   `json:"truncate,omitempty"`
}

func (s *Toolset) listVoices(context.Context, map[string]any) (*mcpgo.CallToolResult, error) {
	return mcp.TextResult("Available predefined voices: " + voices.Joined()), nil
}

func (s *Toolset) generateAudio(ctx context.Context, args map[string]any) (*mcpgo.CallToolResult, error) {
	var in GenerateAudioInput
	if err := mcp.DecodeArguments(args, &in); err != nil {
		return nil, err
	}

	if in.Voice == "" {
		in.Voice = voices.Default
	}

	if in.OutputPath == "" {
		in.OutputPath = DefaultOutputPath
	}

	s.log.Debug("Generating audio",
		"voice", in.Voice,
		"predefined_voice", voices.IsPredefined(in.Voice),
		"output_path", in.OutputPath,
	)

	res, err := s.run(ctx, s.cfg.Engine, command.GenerateArgs(in.Text, in.Voice, in.OutputPath))
	if err != nil {
		return nil, err
	}

	return outcome(s.cfg.Engine, res,
		"Error generating audio: ",
		fmt.Sprintf("Successfully generated audio to %s.\n%s", in.OutputPath, res.Stdout),
	), nil
}

func (s *Toolset) say(ctx context.Context, args map[string]any) (*mcpgo.CallToolResult, error) {
	var in SayInput
	if err := mcp.DecodeArguments(args, &in); err != nil {
		return nil, err
	}

	res, err := s.run(ctx, s.cfg.Helper, command.SayArgs(in.Text, in.Voice))
	if err != nil {
		return nil, err
	}

	return outcome(s.cfg.Helper, res,
		"Error playing audio: ",
		`Successfully played: "`+in.Text+`"`,
	), nil
}

func (s *Toolset) exportVoice(ctx context.Context, args map[string]any) (*mcpgo.CallToolResult, error) {
	var in ExportVoiceInput
	if err := mcp.DecodeArguments(args, &in); err != nil {
		return nil, err
	}

	res, err := s.run(ctx, s.cfg.Engine, command.ExportVoiceArgs(in.AudioPath, in.ExportPath, in.Truncate))
	if err != nil {
		return nil, err
	}

	return outcome(s.cfg.Engine, res,
		"Error exporting voice: ",
		fmt.Sprintf("Successfully exported voice embedding to %s.\n%s", in.ExportPath, res.Stdout),
	), nil
}
