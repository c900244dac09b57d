package main

import (
	"github.com/spf13/cobra"

	"tracks.ghoststops.org/internal/gtfs"
)

func newFeedInfoCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "feed-info [SOURCE]",
		Short: "Parse a static GTFS feed and print its table counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := c.cfg.Segments.FeedSource
			if len(args) == 1 {
				source = args[0]
			}

			static, err := gtfs.LoadStatic(cmd.Context(), gtfs.Config{Source: source})
			if err != nil {
				return err
			}

			gtfs.Summarize(source, static).PrintStatistics(cmd.OutOrStdout())
			return nil
		},
	}
}
