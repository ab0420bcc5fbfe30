package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scriptsync/internal/config"
	"scriptsync/internal/episode"
	"scriptsync/internal/store"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <SxxEyy>",
		Short: "Remove an episode's stored clips and run history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := episode.ParseCode(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				removed, err := st.DeleteEpisode(cmd.Context(), code)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d clips for %s\n", removed, code)
				return nil
			})
		},
	}
}
