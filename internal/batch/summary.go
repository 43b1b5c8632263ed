package batch

import "time"

// Failure records a file skipped under ContinueOnError.
type Failure struct {
	File string
	Kind string
	Err  error
}

// DirSummary counts what happened in one input directory.
type DirSummary struct {
	Dir      string
	Output   string
	Files    int
	Written  int
	Empty    int
	Cached   int
	Failed   int
	Failures []Failure
}

// Summary describes a whole run.
type Summary struct {
	RunID   string
	Model   string
	Dirs    []DirSummary
	Elapsed time.Duration
}

// Totals sums the per-directory counters.
func (s Summary) Totals() DirSummary {
	var total DirSummary
	for _, d := range s.Dirs {
		total.Files += d.Files
		total.Written += d.Written
		total.Empty += d.Empty
		total.Cached += d.Cached
		total.Failed += d.Failed
		total.Failures = append(total.Failures, d.Failures...)
	}
	return total
}
