package command

// Sub-commands and flags understood by the synthesis engine.
const (
	SubcommandGenerate    = "generate"
	SubcommandExportVoice = "export-voice"

	FlagText       = "--text"
	FlagVoice      = "--voice"
	FlagOutputPath = "--output-path"
	FlagTruncate   = "--truncate"

	// FlagHelperVoice selects the voice for the playback helper.
	FlagHelperVoice = "-v"
)

// Program is an executable plus the arguments that precede every invocation,
// e.g. "uv" with prefix "run pocket-tts".
type Program struct {
	Path   string
	Prefix []string
}

// Command returns the program path and the full argument vector for args.
func (p Program) Command(args ...string) (string, []string) {
	full := make([]string, 0, len(p.Prefix)+len(args))
	full = append(full, p.Prefix...)
	full = append(full, args...)

	return p.Path, full
}

// String renders the program for logs.
func (p Program) String() string {
	s := p.Path
	for _, a := range p.Prefix {
		s += " " + a
	}

	return s
}

// GenerateArgs builds the engine arguments for rendering text to a file.
func GenerateArgs(text, voice, outputPath string) []string {
	return []string{
		SubcommandGenerate,
		FlagText, text,
		FlagVoice, voice,
		FlagOutputPath, outputPath,
	}
}

// ExportVoiceArgs builds the engine arguments for exporting a voice embedding.
// The truncation flag is appended only when truncate is true.
func ExportVoiceArgs(audioPath, exportPath string, truncate bool) []string {
	args := []string{SubcommandExportVoice, audioPath, exportPath}
	if truncate {
		args = append(args, FlagTruncate)
	}

	return args
}

// SayArgs builds the playback helper arguments. The voice flag pair is
// prepended only when voice is non-empty.
func SayArgs(text, voice string) []string {
	if voice == "" {
		return []string{text}
	}

	return []string{FlagHelperVoice, voice, text}
}
