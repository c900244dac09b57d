package main

import (
	"github.com/spf13/cobra"

	"tracks.ghoststops.org/internal/inspect"
)

func newInspectCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Summarise a segment GeoJSON file or a bare feature array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := inspect.LoadFile(args[0])
			if err != nil {
				return err
			}
			inspect.Analyze(fc).Print(cmd.OutOrStdout())
			return nil
		},
	}
}
