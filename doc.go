// Package pockettts provides a Model Context Protocol server that exposes
// the Pocket TTS text-to-speech engine as tools.
//
// The server advertises four tools:
//
//   - list_voices: the predefined voices bundled with the engine.
//   - generate_audio: render text to a .wav file.
//   - say: render text and play it immediately through the pocket-say helper.
//   - export_voice: convert an audio sample into a .safetensors voice embedding.
//
// Every call launches the engine or helper as a child process. Its exit status
// decides whether the tool result is flagged as an error, and its output
// becomes the result text.
//
// # Basic Usage
//
// Serve a single session over stdin/stdout:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := pockettts.RunStdio(ctx,
//	    pockettts.WithLogger(slog.Default()),
//	); err != nil {
//	    log.Fatal(err)
//	}
//
// # Custom Transports
//
// NewServer returns a Server that can run over any go-sdk transport:
//
//	server, err := pockettts.NewServer(
//	    pockettts.WithEnginePath("/opt/pocket-tts/bin/pocket-tts"),
//	    pockettts.WithCallTimeout(2*time.Minute),
//	)
//	if err != nil {
//	    return err
//	}
//
//	return server.Run(ctx, transport)
//
// # Program Discovery
//
// Unless set explicitly, the engine is located on PATH, then in
// /usr/local/bin and ~/.local/bin, and finally run through "uv run pocket-tts".
// The playback helper is looked up next to the server executable, then on
// PATH.
//
// # Argument Validation
//
// Arguments are validated against each tool's input schema and schema
// defaults are filled in before the engine runs. A call with invalid
// arguments returns an error result naming the problem. Use
// WithValidation(false) to pass arguments through unchecked.
package pockettts
