package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scriptsync/internal/matcher"
	"scriptsync/internal/script"
	"scriptsync/internal/subtitles"
)

type matchOutput struct {
	Script    string                 `json:"script"`
	Subtitles string                 `json:"subtitles"`
	Segments  int                    `json:"segments"`
	Matches   []matcher.SegmentMatch `json:"matches"`
	Unmatched []int                  `json:"unmatched_positions"`
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "match <script.txt> <subtitles.srt>",
		Short: "Align a script with a subtitle file and print the matches",
		Long: `Align a script with a subtitle file without touching the database.

Each matched line is printed with its subtitle timing and match ratio. Lines
split into sentences also list every sentence that matched on its own.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			parser := script.NewParser(script.OptionsFromConfig(cfg.Script))
			segments, err := parser.ParseFile(args[0])
			if err != nil {
				return err
			}
			cues, err := subtitles.ParseSRTFile(args[1])
			if err != nil {
				return err
			}
			cues, _ = subtitles.CleanCues(cues)
			idx := subtitles.BuildIndex(cues)

			dm := matcher.NewDialogMatcher(idx, matcher.OptionsFromConfig(cfg.Matching), logger)
			matches, err := dm.MatchAll(cmd.Context(), segments)
			if err != nil {
				return err
			}
			out := matchOutput{
				Script:    args[0],
				Subtitles: args[1],
				Segments:  len(segments),
				Matches:   matches,
				Unmatched: matcher.UnmatchedPositions(segments, matches),
			}
			if jsonOutput {
				return writeJSON(cmd, out)
			}
			printMatchTable(cmd, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printMatchTable(cmd *cobra.Command, out matchOutput) {
	w := cmd.OutOrStdout()
	if len(out.Matches) == 0 {
		fmt.Fprintf(w, "No matches for %d segments\n", out.Segments)
		return
	}

	var rows [][]string
	for _, m := range out.Matches {
		if m.Complete != nil {
			rows = append(rows, matchRow(m, "line", *m.Complete))
		}
		for i, sentence := range m.Sentences {
			rows = append(rows, matchRow(m, fmt.Sprintf("sentence %d", i+1), sentence))
		}
	}
	headers := []string{"Pos", "Speaker", "Kind", "Start", "End", "Ratio", "Text"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignWrap}
	footer := []string{"", "", "", "", "", "", fmt.Sprintf("%d of %d segments matched", len(out.Matches), out.Segments)}
	fmt.Fprintln(w, renderTable(headers, rows, aligns, footer))
	fmt.Fprintf(w, "Unmatched positions: %s\n", formatPositions(out.Unmatched))
}

func matchRow(m matcher.SegmentMatch, kind string, r matcher.MatchResult) []string {
	return []string{
		fmt.Sprint(m.Position),
		speakerLabel(m.Speaker),
		kind,
		formatSeconds(r.StartTime),
		formatSeconds(r.EndTime),
		formatRatio(r.Ratio),
		r.TargetText,
	}
}
