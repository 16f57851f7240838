// Package command builds argument vectors for the external programs the
// server drives.
//
// The synthesis engine is invoked as
//
//	<engine> generate --text <text> --voice <voice> --output-path <path>
//	<engine> export-voice <audio_path> <export_path> [--truncate]
//
// and the playback helper as
//
//	<helper> [-v <voice>] <text>
//
// Every value is passed as its own argument; nothing here is ever joined into
// a shell string.
package command
