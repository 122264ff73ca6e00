package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, enabled, verbose bool) (*DefaultLogger, *bytes.Buffer, *bytes.Buffer, string) {
	t.Helper()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	l := NewWithOutput(enabled, logFile, verbose, stdout, stderr)
	l.SetColor(false)
	t.Cleanup(func() { _ = l.Close() })

	return l, stdout, stderr, logFile
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNew(t *testing.T) {
	t.Run("disabled logger creates no file", func(t *testing.T) {
		_, _, _, logFile := newTestLogger(t, false, true)
		_, err := os.Stat(logFile)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("enabled logger creates file and directory", func(t *testing.T) {
		_, stdout, _, logFile := newTestLogger(t, true, true)

		assert.Contains(t, readLog(t, logFile), "commitbot debug logging started")
		assert.Contains(t, stdout.String(), "Debug logging enabled")
	})

	t.Run("unwritable log file falls back to stderr", func(t *testing.T) {
		dir := t.TempDir()
		stderr := &bytes.Buffer{}
		l := NewWithOutput(true, dir, true, &bytes.Buffer{}, stderr)
		defer func() { _ = l.Close() }()

		assert.Contains(t, stderr.String(), "Failed to open log file")
	})
}

func TestFileLogging(t *testing.T) {
	l, _, _, logFile := newTestLogger(t, true, false)

	l.Info("info %d", 1)
	l.Warning("warning %d", 2)
	l.Error("error %d", 3)

	content := readLog(t, logFile)
	assert.Contains(t, content, "INFO")
	assert.Contains(t, content, "info 1")
	assert.Contains(t, content, "WARN")
	assert.Contains(t, content, "warning 2")
	assert.Contains(t, content, "ERROR")
	assert.Contains(t, content, "error 3")
}

func TestUserMessages(t *testing.T) {
	l, stdout, stderr, logFile := newTestLogger(t, true, true)

	t.Run("InfoToUser", func(t *testing.T) {
		stdout.Reset()
		l.InfoToUser("Test info to user: %s", "message")
		assert.Equal(t, "ℹ️  Test info to user: message\n", stdout.String())
		assert.Contains(t, readLog(t, logFile), "Test info to user: message")
	})

	t.Run("Success", func(t *testing.T) {
		stdout.Reset()
		l.Success("Commit created: %s", "🎨 Code cleanup")
		assert.Equal(t, "✅ Commit created: 🎨 Code cleanup\n", stdout.String())
	})

	t.Run("WarningToUser", func(t *testing.T) {
		stdout.Reset()
		l.WarningToUser("Push failed: %s", "no remote")
		assert.Equal(t, "⚠️  Push failed: no remote\n", stdout.String())
	})

	t.Run("Error goes to stderr", func(t *testing.T) {
		stdout.Reset()
		stderr.Reset()
		l.Error("Error making commit: %v", "boom")
		assert.Empty(t, stdout.String())
		assert.Equal(t, "❌ Error making commit: boom\n", stderr.String())
	})

	t.Run("StatusMessage is not logged", func(t *testing.T) {
		stdout.Reset()
		l.StatusMessage("📂 Repository path: %s", "/tmp/repo")
		assert.Equal(t, "📂 Repository path: /tmp/repo\n", stdout.String())
		assert.NotContains(t, readLog(t, logFile), "Repository path")
	})
}

func TestWarningRespectsVerbose(t *testing.T) {
	quiet, quietOut, _, _ := newTestLogger(t, false, false)
	quiet.Warning("hidden")
	assert.Empty(t, quietOut.String())

	loud, loudOut, _, _ := newTestLogger(t, false, true)
	loud.Warning("shown")
	assert.Equal(t, "⚠️  shown\n", loudOut.String())
}
