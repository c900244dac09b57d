package main

import (
	"time"

	"github.com/spf13/cobra"

	"tracks.ghoststops.org/internal/logging"
	"tracks.ghoststops.org/internal/ridership"
	"tracks.ghoststops.org/internal/socrata"
	"tracks.ghoststops.org/internal/utils"
	"tracks.ghoststops.org/ridershipdb"
)

func newSyncRidershipCmd(c *cli) *cobra.Command {
	var (
		databaseURL string
		socrataURL  string
		days        int
		limit       int
		since       string
		rps         float64
	)

	cmd := &cobra.Command{
		Use:   "sync-ridership",
		Short: "Backfill daily entries for stations missing from the ridership import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg.Ridership
			flags := cmd.Flags()
			applyString(flags, "database-url", databaseURL, &cfg.DatabaseURL)
			applyString(flags, "socrata-url", socrataURL, &cfg.SocrataURL)
			applyInt(flags, "days", days, &cfg.Days)
			applyInt(flags, "limit", limit, &cfg.Limit)
			applyFloat(flags, "rate", rps, &cfg.RequestsPerSecond)

			if err := utils.ValidateDate(since); err != nil {
				return err
			}
			opts := ridership.Options{Days: cfg.Days, Limit: cfg.Limit}
			if since != "" {
				opts.Since, _ = time.Parse("2006-01-02", since)
			}

			store, err := ridershipdb.NewClient(ridershipdb.NewConfig(cfg.DatabaseURL, c.cfg.Env, c.logger))
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(store, c.logger, "close_database")

			fetcher := socrata.NewClient(socrata.Config{
				BaseURL:           cfg.SocrataURL,
				AppToken:          cfg.AppToken,
				RequestsPerSecond: cfg.RequestsPerSecond,
			})

			report, err := ridership.Sync(cmd.Context(), fetcher, store, ridership.MissingStations(), opts)
			if err != nil {
				return err
			}
			report.Print(cmd.OutOrStdout())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&databaseURL, "database-url", "", "SQLite path or postgres:// URL (default from config or DATABASE_URL)")
	flags.StringVar(&socrataURL, "socrata-url", "", "Daily station entries dataset endpoint")
	flags.IntVar(&days, "days", 0, "How many days back to fetch")
	flags.IntVar(&limit, "limit", 0, "Maximum rows per station")
	flags.StringVar(&since, "since", "", "Fetch rows after this date (YYYY-MM-DD), overrides --days")
	flags.Float64Var(&rps, "rate", 0, "Maximum portal requests per second")
	return cmd
}
