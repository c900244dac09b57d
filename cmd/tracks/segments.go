package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracks.ghoststops.org/internal/tracks"
)

func newSegmentsCmd(c *cli) *cobra.Command {
	var (
		source  string
		output  string
		epsilon float64
		long    float64
	)

	cmd := &cobra.Command{
		Use:   "segments",
		Short: "Build the deduplicated rail segment GeoJSON from the CTA GTFS feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg.Segments
			flags := cmd.Flags()
			applyString(flags, "source", source, &cfg.FeedSource)
			applyString(flags, "output", output, &cfg.OutputPath)
			applyFloat(flags, "epsilon", epsilon, &cfg.Epsilon)
			applyFloat(flags, "long-segment-meters", long, &cfg.LongSegmentMeters)
			if err := cfg.Validate(); err != nil {
				return err
			}

			result, err := tracks.Run(cmd.Context(), tracks.Options{
				Source:     cfg.FeedSource,
				OutputPath: cfg.OutputPath,
				Build: tracks.BuildOptions{
					Epsilon:           cfg.Epsilon,
					LongSegmentMeters: cfg.LongSegmentMeters,
				},
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d segments to %s\n", result.Features, result.OutputPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&source, "source", "", "GTFS zip URL or local path (default from config)")
	flags.StringVarP(&output, "output", "o", "", "Output GeoJSON path (default from config)")
	flags.Float64Var(&epsilon, "epsilon", 0, "Douglas-Peucker tolerance in degrees")
	flags.Float64Var(&long, "long-segment-meters", 0, "Warn about segments longer than this")
	return cmd
}
