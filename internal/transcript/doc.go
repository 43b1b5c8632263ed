// Package transcript turns raw engine segments into the single line of text
// stored per audio file.
//
// Clean drops empty segments and bracketed non-speech markers such as
// [BLANK_AUDIO] or [NOISE]. Transcriber runs an engine, cleans its output and
// optionally consults a transcript cache first.
package transcript
