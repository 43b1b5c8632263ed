package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"logscribe/internal/preflight"
)

const checkLabelWidth = 24

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "check [dir...]",
		Short: "Check engine dependencies, model availability and directory access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg, args)
			out := cmd.OutOrStdout()

			if asTable {
				spec := tableSpec{
					headers: []string{"Check", "Status", "Detail"},
					aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft},
				}
				for _, r := range results {
					spec.rows = append(spec.rows, []string{r.Name, checkLabel(r), r.Detail})
				}
				fmt.Fprintln(out, spec.render())
			} else {
				fmt.Fprintln(out, renderCheckLines("engine "+cfg.Engine.Name, results, isTerminal(out)))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				names := make([]string, 0, len(failed))
				for _, r := range failed {
					names = append(names, r.Name)
				}
				return fmt.Errorf("%d check(s) failed: %s", len(failed), strings.Join(names, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "Render results as a table")
	return cmd
}

func renderCheckLines(title string, results []preflight.Result, colorize bool) string {
	heading := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	lines := []string{
		paint(heading, ansiBlue, colorize),
		paint(strings.Repeat("-", len(heading)), ansiBlue, colorize),
	}
	for _, r := range results {
		line := fmt.Sprintf("  %-*s [%s]", checkLabelWidth, r.Name+":", checkLabel(r))
		if r.Detail != "" {
			line += " " + r.Detail
		}
		lines = append(lines, paint(line, checkColor(r), colorize))
	}
	return strings.Join(lines, "\n")
}

func checkLabel(r preflight.Result) string {
	switch {
	case !r.Passed:
		return "ERROR"
	case r.Warn:
		return "WARN"
	default:
		return "OK"
	}
}

func checkColor(r preflight.Result) string {
	switch {
	case !r.Passed:
		return ansiRed
	case r.Warn:
		return ansiYellow
	default:
		return ansiGreen
	}
}
