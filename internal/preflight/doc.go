// Package preflight provides readiness checks for the engine, model files,
// credentials and directories a transcription run depends on.
//
// The "logscribe check" command renders RunAll results as status lines or a
// table and exits non-zero when any required check fails.
package preflight
