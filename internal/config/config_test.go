package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTOML = `
[server]
http_port = 9090

[database]
dbname = "grooming"
password = "from-file"

[business]
initial_status = "pending"

[auth]
jwt_secret = "0123456789abcdef0123456789abcdef"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validTOML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "grooming", cfg.Database.DBName)
	assert.Equal(t, "pending", cfg.Business.InitialStatus)

	// значения по умолчанию
	assert.Equal(t, 15, cfg.Business.SlotStepMinutes)
	assert.Equal(t, 45, cfg.Business.BookingCutoffMinutes)
	assert.Equal(t, 3, cfg.Business.CancellationLeadHours)
	assert.Equal(t, "America/Bogota", cfg.Business.Timezone)
	assert.Equal(t, 16, cfg.Realtime.SubscriberBufferSize)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(writeConfig(t, validTOML))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	content := `
[database]
dbname = "grooming"

[business]
initial_status = "accepted"
slot_step_minutes = 7

[auth]
jwt_secret = "short"
`
	_, err := Load(writeConfig(t, content))

	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "initial_status")
	assert.Contains(t, err.Error(), "slot_step_minutes")
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
