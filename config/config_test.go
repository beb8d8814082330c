package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("POSTER_MAX_BYTES", "")
	t.Setenv("DEFAULT_CATEGORY", "")

	cfg := Load()

	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, int64(10<<20), cfg.PosterMaxBytes)
	assert.Equal(t, "SPORTS", cfg.DefaultCategory)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "events")
	t.Setenv("POSTER_MAX_BYTES", "2048")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, int64(2048), cfg.PosterMaxBytes)
	assert.Contains(t, cfg.DSN(), "host=db")
	assert.Contains(t, cfg.DSN(), "dbname=events")
}

func TestLoad_InvalidPosterLimitFallsBack(t *testing.T) {
	t.Setenv("POSTER_MAX_BYTES", "lots")

	cfg := Load()

	assert.Equal(t, int64(10<<20), cfg.PosterMaxBytes)
}

func TestLocation(t *testing.T) {
	cfg := &Config{EventTimezone: "UTC"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.EventTimezone = "Mars/Olympus_Mons"
	_, err = cfg.Location()
	assert.Error(t, err)
}
