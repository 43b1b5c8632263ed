// Package services defines shared error markers consumed by the scanner,
// engines, CSV writer and batch runner.
//
// Wrap tags a failure with one of the sentinel markers plus component and
// operation context, so callers can classify it with errors.Is (or Kind)
// without parsing messages. The batch runner uses the classification to decide
// whether a per-file failure may be skipped.
package services
