// Package ridershipdb stores daily station ridership in SQLite or Postgres.
package ridershipdb

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // Postgres driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"tracks.ghoststops.org/internal/appconf"
	"tracks.ghoststops.org/internal/logging"
)

const memoryDSN = ":memory:"

// Client is the main entry point for the library
type Client struct {
	config Config
	DB     *sqlx.DB
	logger *slog.Logger
}

// NewClient opens the database named by config.DSN and creates the
// ridership table if it does not exist.
func NewClient(config Config) (*Client, error) {
	driver, source := driverFor(config.DSN)
	if config.Env == appconf.Test && driver == "sqlite" && source != memoryDSN {
		return nil, errors.New("test database must use in-memory storage")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sqlx.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// every :memory: connection is its own database
	if source == memoryDSN {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	if err := InitDB(db); err != nil {
		logging.SafeCloseWithLogging(db, logger, "close_database")
		return nil, err
	}

	logging.LogOperation(logger, "database_ready",
		slog.String("driver", driver))

	return &Client{
		config: config,
		DB:     db,
		logger: logger,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// driverFor picks the database/sql driver for dsn and returns the data
// source to hand it.
func driverFor(dsn string) (driver, source string) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn
	case strings.HasPrefix(dsn, "file:"):
		return "sqlite", strings.TrimPrefix(dsn, "file:")
	default:
		return "sqlite", dsn
	}
}
