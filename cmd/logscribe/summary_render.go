package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"logscribe/internal/batch"
	"logscribe/internal/engine"
)

func renderSummary(summary batch.Summary, eng engine.Engine) string {
	spec := tableSpec{
		headers: []string{"Directory", "Output", "Files", "Written", "Empty", "Cached", "Failed"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	}
	for _, d := range summary.Dirs {
		spec.rows = append(spec.rows, summaryRow(d.Dir, d.Output, d))
	}
	if len(summary.Dirs) > 1 {
		spec.footer = summaryRow("total", "", summary.Totals())
	}

	var b strings.Builder
	b.WriteString(spec.render())
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Engine %s, run %s, %s\n", engine.Describe(eng), summary.RunID, summary.Elapsed.Round(time.Second))

	if failures := summary.Totals().Failures; len(failures) > 0 {
		b.WriteString("Skipped files:\n")
		for _, f := range failures {
			fmt.Fprintf(&b, "  %s (%s): %v\n", f.File, f.Kind, f.Err)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func summaryRow(dir, output string, d batch.DirSummary) []string {
	return []string{
		dir,
		output,
		strconv.Itoa(d.Files),
		strconv.Itoa(d.Written),
		strconv.Itoa(d.Empty),
		strconv.Itoa(d.Cached),
		strconv.Itoa(d.Failed),
	}
}
