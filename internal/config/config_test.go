package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
server:
  host: "localhost"
  port: 8080
database:
  host: "localhost"
  port: 5432
  user: "rentdesk"
  password: "pw"
  database: "rentdesk_test"
  ssl_mode: "disable"
jwt:
  secret: "0123456789abcdef0123456789abcdef"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, int64(10000), cfg.Billing.LateFeePerDayCents)
	require.NotNil(t, cfg.Notifications.ReminderWindowDays)
	assert.Equal(t, 3, *cfg.Notifications.ReminderWindowDays)
	require.NotNil(t, cfg.Notifications.PickupWindowDays)
	assert.Equal(t, 1, *cfg.Notifications.PickupWindowDays)
	require.NotNil(t, cfg.Notifications.HistoryCap)
	assert.Equal(t, 50, *cfg.Notifications.HistoryCap)
	require.NotNil(t, cfg.Notifications.OverdueEnabled)
	assert.True(t, *cfg.Notifications.OverdueEnabled)
	assert.Equal(t, "0 0 2 * * *", cfg.Scheduler.ApplyLateFees)
	assert.Equal(t, "0 */15 * * * *", cfg.Scheduler.RefreshNotifications)
	assert.Equal(t, "0 0 8 * * *", cfg.Scheduler.SendUpcomingReminders)
}

func TestLoad_ExplicitValuesKept(t *testing.T) {
	yaml := minimalYAML + `
billing:
  late_fee_per_day_cents: 2500
notifications:
  reminder_window_days: 7
  overdue_enabled: false
`
	cfg, err := Load(writeConfig(t, yaml))
	require.NoError(t, err)

	assert.Equal(t, int64(2500), cfg.Billing.LateFeePerDayCents)
	require.NotNil(t, cfg.Notifications.ReminderWindowDays)
	assert.Equal(t, 7, *cfg.Notifications.ReminderWindowDays)
	require.NotNil(t, cfg.Notifications.OverdueEnabled)
	assert.False(t, *cfg.Notifications.OverdueEnabled, "explicit false is not overwritten by the default")
}

func TestLoad_ExplicitZeroWindowsKept(t *testing.T) {
	yaml := minimalYAML + `
notifications:
  reminder_window_days: 0
  pickup_window_days: 0
  history_cap: 0
`
	cfg, err := Load(writeConfig(t, yaml))
	require.NoError(t, err)

	require.NotNil(t, cfg.Notifications.ReminderWindowDays)
	assert.Equal(t, 0, *cfg.Notifications.ReminderWindowDays, "explicit zero is not overwritten by the default")
	require.NotNil(t, cfg.Notifications.PickupWindowDays)
	assert.Equal(t, 0, *cfg.Notifications.PickupWindowDays)
	require.NotNil(t, cfg.Notifications.HistoryCap)
	assert.Equal(t, 0, *cfg.Notifications.HistoryCap)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("LATE_FEE_PER_DAY_CENTS", "500")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, int64(500), cfg.Billing.LateFeePerDayCents)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_ValidationFailures(t *testing.T) {
	t.Run("ShortJWTSecret", func(t *testing.T) {
		yaml := `
server:
  port: 8080
database:
  host: "localhost"
  user: "u"
  database: "d"
jwt:
  secret: "short"
`
		_, err := Load(writeConfig(t, yaml))
		assert.ErrorContains(t, err, "32 characters")
	})

	t.Run("MissingDatabaseHost", func(t *testing.T) {
		yaml := `
server:
  port: 8080
database:
  user: "u"
  database: "d"
jwt:
  secret: "0123456789abcdef0123456789abcdef"
`
		_, err := Load(writeConfig(t, yaml))
		assert.ErrorContains(t, err, "database host")
	})

	t.Run("BadPort", func(t *testing.T) {
		yaml := `
server:
  port: 99999
database:
  host: "localhost"
  user: "u"
  database: "d"
jwt:
  secret: "0123456789abcdef0123456789abcdef"
`
		_, err := Load(writeConfig(t, yaml))
		assert.ErrorContains(t, err, "server port")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestGetDatabaseConnectionString(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, "postgres://rentdesk:pw@localhost:5432/rentdesk_test?sslmode=disable", cfg.GetDatabaseConnectionString())
	assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
}
