// Package whispercpp runs the whisper.cpp command line tool against a WAV file
// and parses the JSON transcript it writes.
//
// Models are ggml files; ResolveModel accepts either a path or one of the
// standard model names looked up inside a models directory.
package whispercpp
