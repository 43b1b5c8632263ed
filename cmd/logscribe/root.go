package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var engine engineFlags
	var run runFlags

	ctx := newCommandContext(&configFlag, &engine)

	rootCmd := &cobra.Command{
		Use:   "logscribe [flags] <dir>...",
		Short: "Batch-transcribe .wav audio logs into CSV files",
		Long: `logscribe transcribes every .wav file in each directory given and appends
one row per file to <dir>/automatic_transcriptions.csv. An existing output
file is never reused; a numbered variant such as automatic_transcriptions_1.csv
is created instead.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscription(cmd, ctx, &run, args)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	persistent.StringVar(&engine.engine, "engine", "", "Transcription engine: whispercpp, whisperx or openai")
	persistent.StringVar(&engine.model, "model", "", "Model name or path to a model file")
	persistent.StringVar(&engine.language, "language", "", `Spoken language hint (ISO code or "auto")`)

	flags := rootCmd.Flags()
	flags.StringVar(&run.outFile, "out-file", "", "Write every directory's rows to this CSV file")
	flags.BoolVar(&run.continueOnError, "continue-on-error", false, "Skip files that fail to transcribe instead of aborting")
	flags.BoolVar(&run.noProgress, "no-progress", false, "Disable the progress bar")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}
