package ridership

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tracks.ghoststops.org/internal/logging"
	"tracks.ghoststops.org/internal/socrata"
	"tracks.ghoststops.org/ridershipdb"
)

// Fetcher retrieves portal rows for one station.
type Fetcher interface {
	StationRidership(ctx context.Context, q socrata.Query) ([]socrata.Record, error)
}

// Store persists and summarises ridership rows.
type Store interface {
	UpsertRidership(ctx context.Context, records []ridershipdb.RidershipRecord) (int, error)
	StationSummary(ctx context.Context, stationID string) (ridershipdb.StationSummary, error)
}

// Options control how far back a sync reaches.
type Options struct {
	Days  int
	Limit int
	// Since overrides Days when set.
	Since time.Time
	Now   func() time.Time
}

func (o Options) since() time.Time {
	if !o.Since.IsZero() {
		return o.Since
	}
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	return now().AddDate(0, 0, -o.Days)
}

// StationResult is the outcome of syncing one station.
type StationResult struct {
	Station  Station
	Fetched  int
	Inserted int
	// Err is set when the station was skipped.
	Err     error
	Summary ridershipdb.StationSummary
}

// Report is the outcome of a whole sync.
type Report struct {
	Since         time.Time
	Stations      []StationResult
	TotalInserted int
}

// Sync fetches and stores every station in turn. A fetch failure or an
// unparseable row skips that station and the sync moves on; store
// failures abort.
func Sync(ctx context.Context, fetcher Fetcher, store Store, stations []Station, opts Options) (Report, error) {
	logger := logging.FromContext(ctx)
	report := Report{Since: opts.since()}

	for _, st := range stations {
		result := StationResult{Station: st}
		stationLog := logger.With(slog.String("station", st.Name), slog.String("socrata_id", st.SocrataID))

		records, err := fetcher.StationRidership(ctx, socrata.Query{
			StationID: st.SocrataID,
			Since:     report.Since,
			Limit:     opts.Limit,
		})
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			logging.LogError(stationLog, "failed to fetch station ridership", err)
			result.Err = err
			report.Stations = append(report.Stations, result)
			continue
		}
		result.Fetched = len(records)

		if len(records) == 0 {
			stationLog.Info("no data found")
			report.Stations = append(report.Stations, result)
			continue
		}

		rows, err := toRows(st, records)
		if err != nil {
			logging.LogError(stationLog, "failed to parse station ridership", err)
			result.Err = err
			report.Stations = append(report.Stations, result)
			continue
		}

		n, err := store.UpsertRidership(ctx, rows)
		if err != nil {
			return report, fmt.Errorf("failed to store ridership for %s: %w", st.Name, err)
		}
		result.Inserted = n
		report.TotalInserted += n
		report.Stations = append(report.Stations, result)
	}

	for i := range report.Stations {
		summary, err := store.StationSummary(ctx, report.Stations[i].Station.LocalID)
		if err != nil {
			return report, err
		}
		report.Stations[i].Summary = summary
	}

	logging.LogOperation(logger, "ridership_synced",
		slog.Int("stations", len(report.Stations)),
		slog.Int("inserted", report.TotalInserted))
	return report, nil
}

func toRows(st Station, records []socrata.Record) ([]ridershipdb.RidershipRecord, error) {
	rows := make([]ridershipdb.RidershipRecord, 0, len(records))
	for _, rec := range records {
		date, err := rec.ServiceDate()
		if err != nil {
			return nil, err
		}
		entries, err := rec.Entries()
		if err != nil {
			return nil, err
		}
		rows = append(rows, ridershipdb.RidershipRecord{
			ID:          ridershipdb.RecordID(st.LocalID, date),
			StationID:   st.LocalID,
			ServiceDate: date,
			Entries:     entries,
		})
	}
	return rows, nil
}

// Print writes the per-station verification summary.
func (r Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Synced ridership since %s\n\n", r.Since.Format("2006-01-02"))
	for _, s := range r.Stations {
		latest := "none"
		if s.Summary.Latest.Valid {
			latest = s.Summary.Latest.String
		}
		status := fmt.Sprintf("fetched %d, inserted %d", s.Fetched, s.Inserted)
		if s.Err != nil {
			status = "skipped: " + s.Err.Error()
		}
		fmt.Fprintf(w, "%s: %d records, latest: %s (%s)\n", s.Station.Name, s.Summary.Count, latest, status)
	}
	fmt.Fprintf(w, "\nTotal records inserted: %d\n", r.TotalInserted)
}
