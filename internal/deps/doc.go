// Package deps looks up the external programs the subprocess engines run
// (whisper-cli, uvx) so preflight can report them before a batch starts.
package deps
