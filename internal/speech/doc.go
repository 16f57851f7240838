// Package speech declares the Pocket TTS tools.
//
// Every tool follows one pattern: decode the validated arguments, build an
// argument vector for the synthesis engine or the playback helper, run it
// through a subprocess.Runner, and translate the captured Result into a
// CallToolResult. A non-zero exit status always produces an error result
// carrying the program's stderr, or its stdout when stderr is empty.
package speech
