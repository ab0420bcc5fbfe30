package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"scriptsync/internal/episode"
	"scriptsync/internal/logging"
	"scriptsync/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var episodeFlag string
	var runID string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print recent log lines, optionally for one episode or run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			filter := logs.Filter{RunID: runID}
			if episodeFlag != "" {
				code, err := episode.ParseCode(episodeFlag)
				if err != nil {
					return err
				}
				filter.Episode = code.String()
			}

			path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
			recent, offset, err := logs.Last(path, lines, filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range recent {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, offset, 500*time.Millisecond, filter, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of recent lines to print")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing lines as they are written")
	cmd.Flags().StringVar(&episodeFlag, "episode", "", "Only lines for this episode (SxxEyy)")
	cmd.Flags().StringVar(&runID, "run", "", "Only lines for this run id")
	return cmd
}
