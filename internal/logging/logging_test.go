package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	logger.With("component", "store").Info("opened", "path", "/tmp/x.db")
	logger.Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "opened", rec["msg"])
	assert.Equal(t, "store", rec["component"])
	assert.Equal(t, "/tmp/x.db", rec["path"])
}

func TestTextFormatFiltersAndCarriesAttrs(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)

	logger.Info("quiet")
	logger.With("component", "controller").Error("operation failed", "op", "add")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "ERR operation failed")
	assert.Contains(t, out, "component=controller")
	assert.Contains(t, out, "op=add")
}

func TestOpenFileCreatesDirectories(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "shoplist.log")
	f, err := OpenFile(p)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, p)
}
