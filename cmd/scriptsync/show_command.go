package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scriptsync/internal/config"
	"scriptsync/internal/episode"
	"scriptsync/internal/script"
	"scriptsync/internal/store"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var speaker string
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <SxxEyy>",
		Short: "List the stored clips of an episode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := episode.ParseCode(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				filter := store.ClipFilter{Episode: code.String(), Limit: limit}
				if speaker != "" {
					// Stored speakers are canonical: upper case with aliases resolved.
					filter.Speaker = script.NewParser(script.OptionsFromConfig(cfg.Script)).CanonicalSpeaker(speaker)
				}
				records, err := st.ListClips(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, records)
				}
				printClipTable(cmd, code, records)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&speaker, "speaker", "", "Only list clips spoken by this speaker")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of clips to list (0 lists all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printClipTable(cmd *cobra.Command, code episode.Code, records []store.ClipRecord) {
	w := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(w, "No clips stored for %s\n", code)
		return
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID,
			speakerLabel(r.Speaker),
			formatSeconds(r.StartTime),
			formatSeconds(r.EndTime),
			formatRatio(r.Ratio),
			yesNo(r.HasMultiSpeaker),
			r.TargetText,
		})
	}
	headers := []string{"Clip", "Speaker", "Start", "End", "Ratio", "Multi", "Text"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignWrap}
	fmt.Fprintln(w, renderTable(headers, rows, aligns, nil))
}
