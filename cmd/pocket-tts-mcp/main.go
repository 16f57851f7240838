// Command pocket-tts-mcp serves the Pocket TTS tools over stdio.
//
// Configuration is read from the environment:
//
//	POCKET_TTS_ENGINE        path to the pocket-tts engine
//	POCKET_TTS_ENGINE_ARGS   arguments before every engine sub-command, e.g. "run pocket-tts"
//	POCKET_TTS_SAY           path to the pocket-say playback helper
//	POCKET_TTS_WORKDIR       working directory for launched programs
//	POCKET_TTS_LOG_LEVEL     debug, info, warn or error (default info)
//	POCKET_TTS_CALL_TIMEOUT  per-call timeout such as 2m (default none)
//	POCKET_TTS_VALIDATE      validate tool arguments (default true)
//
// Logs go to stderr; stdout carries the protocol.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	pockettts "github.com/bjkemp/pocket-tts"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := pockettts.LoadEnv()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("Fatal error", "error", err)

		return 1
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := pockettts.RunStdio(ctx,
		pockettts.WithLogger(log),
		pockettts.WithConfig(cfg),
	); err != nil {
		log.Error("Fatal error", "error", err)

		return 1
	}

	return 0
}
