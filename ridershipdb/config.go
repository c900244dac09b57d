package ridershipdb

import (
	"log/slog"

	"tracks.ghoststops.org/internal/appconf"
)

// Config holds configuration options for the Client
type Config struct {
	// DSN is a SQLite path (optionally prefixed with "file:") or a
	// postgres:// URL.
	DSN    string
	Env    appconf.Environment
	Logger *slog.Logger
}

func NewConfig(dsn string, env appconf.Environment, logger *slog.Logger) Config {
	return Config{
		DSN:    dsn,
		Env:    env,
		Logger: logger,
	}
}
