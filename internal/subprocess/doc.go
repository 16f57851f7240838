// Package subprocess runs external programs and captures their output.
//
// A Runner starts a program with an explicit argument vector (never through a
// shell), drains its standard output and standard error concurrently into
// separate buffers, and returns both together with the exit status once the
// process terminates. A non-zero exit status is reported in the Result, not
// as an error; only failing to launch the program is an error.
package subprocess
