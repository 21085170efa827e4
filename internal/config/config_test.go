package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcv/porteria/internal/config"
	"github.com/fcv/porteria/internal/porteria/policy"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "env: local\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ":9090", cfg.GRPC.Addr)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "./data/porteria.db", cfg.Database.Path)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Schedule.Enforce)
	assert.Equal(t, 0, cfg.AccessLog.RetentionDays)
	assert.Equal(t, 6, cfg.AccessLog.PruneIntervalHours)
	assert.Equal(t, policy.Defaults(), cfg.Presets)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Santiago", loc.String())
}

func TestLoad_Presets(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
presets:
  estricto:
    entry: {allowed: true, by_schedule: true, tolerance_minutes: 10}
    exit: {allowed: true}
  libre:
    entry: {allowed: true, tolerance_minutes: none}
`))
	require.NoError(t, err)
	require.Len(t, cfg.Presets, 2)

	table := cfg.PresetTable()
	p, ok := table.Lookup("estricto")
	require.True(t, ok)
	assert.True(t, p.Entry.BySchedule)
	assert.Equal(t, 10, p.Entry.Tolerance.Minutes())

	p, ok = table.Lookup("libre")
	require.True(t, ok)
	assert.True(t, p.Entry.Tolerance.IsNone())

	_, ok = table.Lookup("acceso_total")
	assert.False(t, ok, "file presets replace the built-in table")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORTERIA_HTTP_ADDR", ":9999")
	t.Setenv("PORTERIA_SCHEDULE_ENFORCE", "true")

	cfg, err := config.Load(writeConfig(t, "http:\n  addr: \":7000\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.True(t, cfg.Schedule.Enforce)
}

func TestLoad_PostgresNeedsDSN(t *testing.T) {
	_, err := config.Load(writeConfig(t, "database:\n  driver: postgres\n"))
	assert.Error(t, err)

	cfg, err := config.Load(writeConfig(t, "database:\n  driver: postgres\n  dsn: postgres://localhost/porteria\n"))
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"driver":    "database:\n  driver: mongo\n",
		"env":       "env: staging\n",
		"timezone":  "timezone: Mars/Olympus\n",
		"retention": "access_log:\n  retention_days: -1\n",
		"tolerance": "presets:\n  x:\n    entry: {tolerance_minutes: soon}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
