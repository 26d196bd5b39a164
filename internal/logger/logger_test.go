package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservation_system/internal/config"
)

func TestNewWritesAuditLogToItsOwnFile(t *testing.T) {
	dir := t.TempDir()
	logs := New(&config.Config{LogDir: dir, LogLevel: "debug"})

	assert.Equal(t, logrus.DebugLevel, logs.App.GetLevel())

	logs.Audit.WithField("email", "a@example.com").Warn("login failed")

	data, err := os.ReadFile(filepath.Join(dir, "auth.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"email":"a@example.com"`)
	assert.Contains(t, string(data), `"msg":"login failed"`)

	_, err = os.Stat(filepath.Join(dir, "info.log"))
	assert.True(t, os.IsNotExist(err), "operational log must not receive audit entries")
}

func TestNewFallsBackToInfoLevel(t *testing.T) {
	logs := New(&config.Config{LogDir: t.TempDir(), LogLevel: "chatty"})
	assert.Equal(t, logrus.InfoLevel, logs.App.GetLevel())
}
