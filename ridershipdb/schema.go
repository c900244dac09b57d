package ridershipdb

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Identifiers are quoted so the mixed-case column names survive Postgres.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS "RidershipDaily" (
		"id" TEXT PRIMARY KEY,
		"stationId" TEXT NOT NULL,
		"serviceDate" TEXT NOT NULL,
		"entries" INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS "RidershipDaily_stationId_idx" ON "RidershipDaily" ("stationId")`,
}

// InitDB creates the ridership table and its index
func InitDB(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	for _, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("error creating schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}
