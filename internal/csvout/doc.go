// Package csvout writes transcription records to per-directory CSV files.
//
// Every Append is a self-contained lock/open/write/close cycle: the header is
// written only when the file is new or empty, and rows already on disk stay
// valid if the process stops between two files. ResolvePath picks the output
// file for a directory without ever overwriting an existing one.
package csvout
