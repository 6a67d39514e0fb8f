package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/passgate/framework/config"
)

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("testdata/empty.env")
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"App.Name", cfg.App.Name, "passgate"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Port", cfg.App.Port, "8000"},
		{"App.Debug", cfg.App.Debug, true},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Log.Format", cfg.Log.Format, "json"},
		{"Ingest.AcceptType", cfg.Ingest.AcceptType, "text/plain"},
		{"Ingest.MaxFileBytes", cfg.Ingest.MaxFileBytes, int64(1 << 20)},
		{"Ingest.MaxFiles", cfg.Ingest.MaxFiles, 32},
		{"Session.Cookie", cfg.Session.Cookie, "passgate_session"},
		{"Session.TTL", cfg.Session.TTL, 2 * time.Hour},
		{"Session.SweepInterval", cfg.Session.SweepInterval, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "MyApp")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("INGEST_ACCEPT_TYPE", "text/csv")
	t.Setenv("SESSION_TTL", "15m")

	cfg, err := config.Load("testdata/empty.env")
	require.NoError(t, err)

	assert.Equal(t, "MyApp", cfg.App.Name)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "text/csv", cfg.Ingest.AcceptType)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
}

func TestLoad_EnvFile(t *testing.T) {
	cfg, err := config.Load("testdata/custom.env")
	require.NoError(t, err)

	assert.Equal(t, "FromFile", cfg.App.Name)
	assert.Equal(t, "9100", cfg.App.Port)
	assert.Equal(t, 4, cfg.Ingest.MaxFiles)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
}

func TestLoad_ProcessEnvWinsOverFile(t *testing.T) {
	t.Setenv("APP_NAME", "FromProcess")

	cfg, err := config.Load("testdata/custom.env")
	require.NoError(t, err)

	assert.Equal(t, "FromProcess", cfg.App.Name)
	assert.Equal(t, "9100", cfg.App.Port)
}

func TestLoad_LaterFilesWin(t *testing.T) {
	cfg, err := config.Load("testdata/custom.env", "testdata/override.env")
	require.NoError(t, err)

	assert.Equal(t, "FromFile", cfg.App.Name)
	assert.Equal(t, "9200", cfg.App.Port)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("INGEST_MAX_FILES", "lots")

	_, err := config.Load("testdata/empty.env")
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_MissingEnvFileIsNotFatal(t *testing.T) {
	_, err := config.Load("testdata/does-not-exist.env")
	assert.NoError(t, err)
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	assert.Panics(t, func() { config.MustLoad("testdata/empty.env") })
}
