package appconf

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracks.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, 0.00003, cfg.Segments.Epsilon)
		assert.Equal(t, DefaultOutputPath, cfg.Segments.OutputPath)
	})

	t.Run("missing default file is ignored", func(t *testing.T) {
		dir := t.TempDir()
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		cfg, err := Load(DefaultConfigPath)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
env: test
logFormat: json
segments:
  feedSource: testdata/feed.zip
  epsilon: 0.0001
ridership:
  days: 30
serve:
  port: 8080
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Test, cfg.Env)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "testdata/feed.zip", cfg.Segments.FeedSource)
		assert.Equal(t, 0.0001, cfg.Segments.Epsilon)
		assert.Equal(t, DefaultOutputPath, cfg.Segments.OutputPath, "unset keys keep defaults")
		assert.Equal(t, 30, cfg.Ridership.Days)
		assert.Equal(t, 8080, cfg.Serve.Port)
	})

	t.Run("validation rejects bad values", func(t *testing.T) {
		path := writeConfig(t, `
segments:
  epsilon: -1
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "Epsilon")
	})

	t.Run("validation rejects infinite epsilon", func(t *testing.T) {
		path := writeConfig(t, `
segments:
  epsilon: .inf
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "must be finite")
	})

	t.Run("validation rejects unknown log format", func(t *testing.T) {
		path := writeConfig(t, "logFormat: xml\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSegmentsConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		epsilon float64
		long    float64
		wantErr string
	}{
		{"defaults", 0.00003, 1000, ""},
		{"zero epsilon", 0, 1000, "Epsilon"},
		{"NaN epsilon", math.NaN(), 1000, "Epsilon"},
		{"infinite long segment", 0.00003, math.Inf(1), "must be finite"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default().Segments
			cfg.Epsilon = tc.epsilon
			cfg.LongSegmentMeters = tc.long
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{
		"DATABASE_URL":           "postgres://localhost/ghost",
		"CHICAGO_DATA_APP_TOKEN": "token",
	}
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "postgres://localhost/ghost", cfg.Ridership.DatabaseURL)
	assert.Equal(t, "token", cfg.Ridership.AppToken)
}

func TestEnvFlagToEnvironment(t *testing.T) {
	assert.Equal(t, Test, EnvFlagToEnvironment("test"))
	assert.Equal(t, Production, EnvFlagToEnvironment("Production"))
	assert.Equal(t, Development, EnvFlagToEnvironment("staging"))
	assert.Equal(t, "production", Production.String())
}

func TestSlogLevel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	cfg.LogLevel = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}
