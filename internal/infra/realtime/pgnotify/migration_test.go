package pgnotify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyTrigger_UsesListenedChannel(t *testing.T) {
	sql, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "002_appointment_notify.sql"))
	require.NoError(t, err)

	assert.Contains(t, string(sql), "'"+DefaultChannel+"'")
}
