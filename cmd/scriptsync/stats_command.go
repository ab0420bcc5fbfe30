package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scriptsync/internal/config"
	"scriptsync/internal/store"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show matched and missing dialogue per processed episode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				summaries, err := st.EpisodeStats(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, summaries)
				}
				printStatsTable(cmd, summaries)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printStatsTable(cmd *cobra.Command, summaries []store.EpisodeSummary) {
	w := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No episodes processed yet")
		return
	}

	var segments, matched, clipCount int
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		segments += s.Segments
		matched += s.Matched
		clipCount += s.Clips
		rows = append(rows, []string{
			s.Episode,
			fmt.Sprint(s.Segments),
			fmt.Sprint(s.Matched),
			fmt.Sprint(s.Unmatched()),
			formatPercent(s.MatchRate()),
			fmt.Sprint(s.Clips),
			formatRatio(s.AverageRatio),
			formatTime(s.LastRun),
		})
	}
	total := store.EpisodeSummary{Segments: segments, Matched: matched}
	footer := []string{
		fmt.Sprintf("%d episodes", len(summaries)),
		fmt.Sprint(segments),
		fmt.Sprint(matched),
		fmt.Sprint(total.Unmatched()),
		formatPercent(total.MatchRate()),
		fmt.Sprint(clipCount),
		"",
		"",
	}
	headers := []string{"Episode", "Segments", "Matched", "Missing", "Rate", "Clips", "Avg Ratio", "Last Run"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}
	fmt.Fprintln(w, renderTable(headers, rows, aligns, footer))
}
