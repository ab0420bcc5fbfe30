package main

import (
	"strings"

	"github.com/spf13/cobra"

	"scriptsync/internal/config"
	"scriptsync/internal/store"
	"scriptsync/internal/workflow"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "batch [video-dir|video-file]",
		Short: "Process every episode video under a directory",
		Long: `Process every episode video under a directory (default: paths.video_dir).

Scripts and subtitles are looked up by file stem in paths.script_dir and
paths.subtitle_dir. Episodes with a completed run are skipped unless --force
is given. A failing episode does not stop the batch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				path := cfg.Paths.VideoDir
				if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
					path = args[0]
				}
				pipeline := workflow.NewPipeline(cfg, st, logger)
				report, runErr := pipeline.RunBatch(cmd.Context(), path, workflow.RunOptions{Force: force})
				if runErr != nil && len(report.Episodes) == 0 {
					return runErr
				}
				if jsonOutput {
					if err := writeJSON(cmd, report); err != nil {
						return err
					}
					return runErr
				}
				printEpisodeReports(cmd, report.Episodes)
				return runErr
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Reprocess episodes that were already processed")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
