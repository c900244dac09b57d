package ridershipdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"tracks.ghoststops.org/internal/logging"
)

// ServiceDateLayout is the stored form of a service date.
const ServiceDateLayout = "2006-01-02 15:04:05"

// RidershipRecord is one row of RidershipDaily
type RidershipRecord struct {
	ID          string `db:"id"`
	StationID   string `db:"stationId"`
	ServiceDate string `db:"serviceDate"`
	Entries     int    `db:"entries"`
}

// StationSummary is the stored row count and latest service date of a station.
type StationSummary struct {
	Count  int            `db:"count"`
	Latest sql.NullString `db:"latest"`
}

// RecordID derives the row id from the station and service date, so the
// same day synced twice replaces the earlier row.
func RecordID(stationID, serviceDate string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(stationID+"|"+serviceDate)).String()
}

// UpsertRidership writes records in a single transaction. Records without
// an ID get one from RecordID.
func (c *Client) UpsertRidership(ctx context.Context, records []RidershipRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := c.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "upsert_ridership")

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO "RidershipDaily" ("id", "stationId", "serviceDate", "entries")
		VALUES (:id, :stationId, :serviceDate, :entries)
		ON CONFLICT ("id") DO UPDATE SET
			"stationId" = excluded."stationId",
			"serviceDate" = excluded."serviceDate",
			"entries" = excluded."entries"
	`)
	if err != nil {
		return 0, fmt.Errorf("error preparing statement: %w", err)
	}
	defer logging.SafeCloseWithLogging(stmt, c.logger, "close_upsert_statement")

	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = RecordID(rec.StationID, rec.ServiceDate)
		}
		if _, err := stmt.ExecContext(ctx, rec); err != nil {
			return 0, fmt.Errorf("error upserting ridership for %s on %s: %w", rec.StationID, rec.ServiceDate, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}

	logging.LogOperation(c.logger, "ridership_upserted",
		slog.String("station_id", records[0].StationID),
		slog.Int("records", len(records)))
	return len(records), nil
}

// StationSummary reports how many days are stored for stationID and the
// most recent one.
func (c *Client) StationSummary(ctx context.Context, stationID string) (StationSummary, error) {
	var summary StationSummary
	query := c.DB.Rebind(`
		SELECT COUNT(*) AS count, MAX("serviceDate") AS latest
		FROM "RidershipDaily"
		WHERE "stationId" = ?
	`)
	if err := c.DB.GetContext(ctx, &summary, query, stationID); err != nil {
		return StationSummary{}, fmt.Errorf("error summarising station %s: %w", stationID, err)
	}
	return summary, nil
}

