package appconf

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when --config is not given. A missing file at
// this path is not an error.
const DefaultConfigPath = "tracks.yml"

const (
	DefaultFeedURL      = "https://www.transitchicago.com/downloads/sch_data/google_transit.zip"
	DefaultOutputPath   = "public/data/cta/chicago_track_segments.geojson"
	DefaultSocrataURL   = "https://data.cityofchicago.org/resource/5neh-572f.json"
	DefaultDatabasePath = "prisma/dev.db"
)

// Config holds all the configuration settings for the tracks tool.
type Config struct {
	Env       Environment     `yaml:"-"`
	EnvName   string          `yaml:"env" validate:"omitempty,oneof=development test production prod"`
	LogLevel  string          `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string          `yaml:"logFormat" validate:"omitempty,oneof=text json"`
	Segments  SegmentsConfig  `yaml:"segments"`
	Ridership RidershipConfig `yaml:"ridership"`
	Serve     ServeConfig     `yaml:"serve"`
}

// SegmentsConfig configures the GTFS to track-segment pipeline.
type SegmentsConfig struct {
	// FeedSource is either an http(s) URL or a local zip path.
	FeedSource        string  `yaml:"feedSource" validate:"required"`
	OutputPath        string  `yaml:"outputPath" validate:"required"`
	Epsilon           float64 `yaml:"epsilon" validate:"gt=0"`
	LongSegmentMeters float64 `yaml:"longSegmentMeters" validate:"gt=0"`
}

// RidershipConfig configures the Socrata ridership backfill.
type RidershipConfig struct {
	DatabaseURL       string  `yaml:"databaseURL" validate:"required"`
	SocrataURL        string  `yaml:"socrataURL" validate:"required,url"`
	AppToken          string  `yaml:"-"`
	Days              int     `yaml:"days" validate:"gt=0"`
	Limit             int     `yaml:"limit" validate:"gt=0"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond" validate:"gte=0"`
}

// ServeConfig configures the local preview server.
type ServeConfig struct {
	Port         int    `yaml:"port" validate:"gt=0,lte=65535"`
	SegmentsPath string `yaml:"segmentsPath" validate:"required"`
}

// Default returns the configuration used when no file or flag overrides it.
func Default() Config {
	return Config{
		Env:       Development,
		EnvName:   Development.String(),
		LogLevel:  "info",
		LogFormat: "text",
		Segments: SegmentsConfig{
			FeedSource:        DefaultFeedURL,
			OutputPath:        DefaultOutputPath,
			Epsilon:           0.00003,
			LongSegmentMeters: 1000,
		},
		Ridership: RidershipConfig{
			DatabaseURL:       DefaultDatabasePath,
			SocrataURL:        DefaultSocrataURL,
			Days:              365,
			Limit:             1000,
			RequestsPerSecond: 2,
		},
		Serve: ServeConfig{
			Port:         4000,
			SegmentsPath: DefaultOutputPath,
		},
	}
}

// Load reads a YAML config file on top of the defaults and validates the
// result. An empty path returns the defaults. A missing file is only an
// error when it was asked for explicitly.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultConfigPath {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("error reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	cfg.Env = EnvFlagToEnvironment(cfg.EnvName)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("DATABASE_URL"); v != "" {
		c.Ridership.DatabaseURL = v
	}
	if v := getenv("CHICAGO_DATA_APP_TOKEN"); v != "" {
		c.Ridership.AppToken = v
	}
}

// Validate checks the struct tags of every section.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return c.Segments.checkFinite()
}

// Validate checks the segment settings after flags have been merged in.
func (s SegmentsConfig) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid segments configuration: %w", err)
	}
	return s.checkFinite()
}

// validator's gt=0 lets +Inf through.
func (s SegmentsConfig) checkFinite() error {
	if !isFinite(s.Epsilon) || !isFinite(s.LongSegmentMeters) {
		return errors.New("invalid segments configuration: epsilon and long-segment-meters must be finite")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SlogLevel converts LogLevel to a slog.Level, defaulting to Info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
