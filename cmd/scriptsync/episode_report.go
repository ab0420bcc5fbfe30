package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scriptsync/internal/store"
	"scriptsync/internal/workflow"
)

func printEpisodeReports(cmd *cobra.Command, reports []workflow.EpisodeReport) {
	w := cmd.OutOrStdout()
	if len(reports) == 0 {
		fmt.Fprintln(w, "No episodes found")
		return
	}
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			r.Episode,
			string(r.Status),
			fmt.Sprint(r.Segments),
			fmt.Sprint(r.Matched),
			fmt.Sprint(len(r.Unmatched)),
			fmt.Sprint(r.SentenceMatches),
			fmt.Sprint(r.Clips),
			fmt.Sprint(r.LowConfidence),
			formatDuration(r.Duration),
		})
	}
	headers := []string{"Episode", "Status", "Segments", "Matched", "Missing", "Sentences", "Clips", "Low Conf", "Duration"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}
	fmt.Fprintln(w, renderTable(headers, rows, aligns, nil))

	for _, r := range reports {
		if r.Status == store.RunFailed && r.Error != "" {
			fmt.Fprintf(w, "%s failed: %s\n", r.Episode, r.Error)
		}
	}
}
