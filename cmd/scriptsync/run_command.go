package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scriptsync/internal/config"
	"scriptsync/internal/episode"
	"scriptsync/internal/store"
	"scriptsync/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "run <video|SxxEyy>",
		Short: "Process one episode and store its clip plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				files, err := episode.Resolve(args[0], cfg.Paths.ScriptDir, cfg.Paths.SubtitleDir)
				if err != nil {
					return err
				}
				pipeline := workflow.NewPipeline(cfg, st, logger)
				report, runErr := pipeline.RunEpisode(cmd.Context(), files, workflow.RunOptions{Force: force})
				if runErr != nil {
					report.Error = runErr.Error()
				}
				if jsonOutput {
					if err := writeJSON(cmd, report); err != nil {
						return err
					}
					return runErr
				}
				printEpisodeReports(cmd, []workflow.EpisodeReport{report})
				if runErr == nil && report.Manifest != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Manifest: %s\n", report.Manifest)
				}
				return runErr
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Reprocess the episode even if it was already processed")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
