// Package discovery locates the external programs the server drives.
//
// The synthesis engine is searched in the following order:
//  1. The explicit path in Config.EnginePath (if provided)
//  2. "pocket-tts" on the system PATH
//  3. Common installation directories (/usr/local/bin, ~/.local/bin)
//  4. "uv" on the system PATH, invoked as "uv run pocket-tts"
//
// The playback helper is searched in the following order:
//  1. The explicit path in Config.HelperPath (if provided)
//  2. "pocket-say" next to the server executable
//  3. "pocket-say" on the system PATH
package discovery
