package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"logscribe/internal/csvout"
	"logscribe/internal/logdir"
	"logscribe/internal/logging"
	"logscribe/internal/services"
	"logscribe/internal/transcript"
)

// FileTranscriber produces the cleaned text for one audio file.
type FileTranscriber interface {
	Run(ctx context.Context, path string) (transcript.Result, error)
}

// Options configures a Runner.
type Options struct {
	// Model is written into the CSV header.
	Model string
	// OutFile, when set, receives the rows of every directory.
	OutFile string
	// FileName is the per-directory output name used without OutFile.
	FileName string
	// ContinueOnError skips files whose transcription fails.
	ContinueOnError bool
	// Progress receives a progress bar per directory; nil disables it.
	Progress io.Writer
	Logger   *slog.Logger
	// RunID tags log lines; a random UUID is used when empty.
	RunID string
}

// Runner drives a batch transcription run.
type Runner struct {
	tr       FileTranscriber
	opts     Options
	resolver csvout.Resolver
	append   func(path string, rec csvout.Record, model string) error
	now      func() time.Time
}

// NewRunner builds a Runner around tr.
func NewRunner(tr FileTranscriber, opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	return &Runner{
		tr:       tr,
		opts:     opts,
		resolver: csvout.Resolver{FileName: opts.FileName},
		append:   csvout.Append,
		now:      time.Now,
	}
}

// RunID returns the identifier attached to this run's log lines.
func (r *Runner) RunID() string {
	return r.opts.RunID
}

// Run processes dirs sequentially. The returned Summary covers everything
// done before an error stopped the run.
func (r *Runner) Run(ctx context.Context, dirs []string) (summary Summary, err error) {
	logger := logging.WithRunID(logging.NewComponentLogger(r.opts.Logger, "batch"), r.opts.RunID)
	started := r.now()
	summary = Summary{RunID: r.opts.RunID, Model: r.opts.Model}
	defer func() { summary.Elapsed = r.now().Sub(started) }()

	if len(dirs) == 0 {
		return summary, services.Wrap(services.ErrConfiguration, "batch", "run", "no input directories", nil)
	}

	var shared string
	if r.opts.OutFile != "" {
		path, err := csvout.NextAvailable(r.opts.OutFile)
		if err != nil {
			return summary, err
		}
		shared = path
	}

	logger.Info("run started", "dirs", len(dirs), "model", r.opts.Model)
	for _, dir := range dirs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}
		dirSummary, err := r.runDir(ctx, logger, dir, shared)
		summary.Dirs = append(summary.Dirs, dirSummary)
		if err != nil {
			return summary, err
		}
	}

	totals := summary.Totals()
	logger.Info("run finished",
		"files", totals.Files,
		"written", totals.Written,
		"empty", totals.Empty,
		"cached", totals.Cached,
		"failed", totals.Failed,
	)
	if totals.Failed > 0 {
		return summary, services.Wrap(services.ErrExternalTool, "batch", "run",
			fmt.Sprintf("%d of %d files failed to transcribe", totals.Failed, totals.Files), nil)
	}
	return summary, nil
}

func (r *Runner) runDir(ctx context.Context, logger *slog.Logger, dir, shared string) (DirSummary, error) {
	result := DirSummary{Dir: dir}

	output := shared
	if output == "" {
		path, err := r.resolver.Resolve(dir, "")
		if err != nil {
			return result, err
		}
		output = path
	}
	result.Output = output

	files, err := logdir.ScanWAV(dir)
	if err != nil {
		return result, err
	}
	result.Files = len(files)
	logger.Info("scanning directory", "dir", dir, "files", len(files), "output", output)

	bar := r.newBar(len(files), dir)
	defer finishBar(bar)

	for _, name := range files {
		path := filepath.Join(dir, name)
		logger.Info("transcribing", "file", name, "dir", dir)
		began := r.now()

		res, err := r.tr.Run(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			if r.opts.ContinueOnError && errors.Is(err, services.ErrExternalTool) {
				result.Failed++
				result.Failures = append(result.Failures, Failure{File: name, Kind: services.Kind(err), Err: err})
				logger.Warn("transcription failed; skipping file", "file", name, "dir", dir, logging.Error(err))
				advanceBar(bar)
				continue
			}
			return result, err
		}

		logger.Info("transcribed",
			"file", name,
			"chars", len(res.Text),
			"duration", r.now().Sub(began),
			"cached", res.Cached,
		)

		if err := r.append(output, csvout.Record{File: name, Text: res.Text}, r.opts.Model); err != nil {
			return result, err
		}
		result.Written++
		if res.Text == "" {
			result.Empty++
		}
		if res.Cached {
			result.Cached++
		}
		advanceBar(bar)
	}
	return result, nil
}

func (r *Runner) newBar(total int, dir string) *progressbar.ProgressBar {
	if r.opts.Progress == nil || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.opts.Progress),
		progressbar.OptionSetDescription(filepath.Base(dir)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprintln(r.opts.Progress) }),
	)
}

func advanceBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil && !bar.IsFinished() {
		_ = bar.Exit()
	}
}
