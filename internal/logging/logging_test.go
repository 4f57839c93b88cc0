package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNew_WritesToStreamAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var buf bytes.Buffer

	l, err := New("info", &buf, dir)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("search finished", "branch", "papers", "items", 3)
	require.NoError(t, l.Close())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "branch=papers")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="search finished"`)
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("error", &buf, "")
	require.NoError(t, err)

	child := l.With("component", "test")
	child.Info("before")
	l.SetLevel("debug")
	child.Debug("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
	assert.NoError(t, l.Close())
}
