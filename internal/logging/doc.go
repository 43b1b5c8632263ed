// Package logging assembles the slog loggers used across logscribe.
//
// Console output puts the component and a short run id in front of each
// message so one batch run reads as a block; JSON output keeps them as plain
// fields. Logs go to stderr and optionally to a file.
package logging
