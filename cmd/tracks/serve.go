package main

import (
	"github.com/spf13/cobra"

	"tracks.ghoststops.org/internal/preview"
)

func newServeCmd(c *cli) *cobra.Command {
	var (
		port     int
		segments string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated segment file and JSON views for local debugging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg.Serve
			flags := cmd.Flags()
			applyInt(flags, "port", port, &cfg.Port)
			applyString(flags, "segments", segments, &cfg.SegmentsPath)

			server, err := preview.NewServer(cfg.SegmentsPath, c.logger)
			if err != nil {
				return err
			}
			return server.ListenAndServe(cmd.Context(), cfg.Port)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&port, "port", "p", 0, "API server port (default from config)")
	flags.StringVar(&segments, "segments", "", "Segment GeoJSON to serve (default from config)")
	return cmd
}
