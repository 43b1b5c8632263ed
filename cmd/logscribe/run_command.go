package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"logscribe/internal/batch"
	"logscribe/internal/config"
	"logscribe/internal/engine"
	"logscribe/internal/language"
	"logscribe/internal/logging"
	"logscribe/internal/transcache"
	"logscribe/internal/transcript"
)

type runFlags struct {
	outFile         string
	continueOnError bool
	noProgress      bool
}

func runTranscription(cmd *cobra.Command, ctx *commandContext, flags *runFlags, dirs []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	overrides := config.Overrides{}
	if cmd.Flags().Changed("continue-on-error") {
		overrides.ContinueOnError = &flags.continueOnError
	}
	if flags.noProgress {
		progress := false
		overrides.Progress = &progress
	}
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return err
	}

	outFile := strings.TrimSpace(flags.outFile)
	if outFile != "" {
		if outFile, err = config.ExpandPath(outFile); err != nil {
			return fmt.Errorf("resolve --out-file: %w", err)
		}
	}

	logger, closeLog, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closeLog()

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	trOpts := []transcript.Option{transcript.WithLogger(logging.NewComponentLogger(logger, "transcript"))}
	if cfg.Cache.Enabled {
		store, err := transcache.Open(cfg.Cache.Path)
		if err != nil {
			return fmt.Errorf("open transcript cache: %w", err)
		}
		defer store.Close()
		trOpts = append(trOpts, transcript.WithCache(store, cfg.Engine.Language))
	}

	var progress io.Writer
	if cfg.Output.Progress && isTerminal(os.Stderr) {
		progress = os.Stderr
	}

	runner := batch.NewRunner(transcript.NewTranscriber(eng, trOpts...), batch.Options{
		Model:           cfg.EngineModel(),
		OutFile:         outFile,
		FileName:        cfg.Output.FileName,
		ContinueOnError: cfg.Output.ContinueOnError,
		Progress:        progress,
		Logger:          logger,
	})
	logger.Info("engine ready",
		logging.FieldRunID, runner.RunID(),
		"engine", engine.Describe(eng),
		"language", language.DisplayName(cfg.Engine.Language),
	)

	summary, runErr := runner.Run(cmd.Context(), dirs)
	if len(summary.Dirs) > 0 && cmd.Context().Err() == nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary, eng))
	}
	return runErr
}
