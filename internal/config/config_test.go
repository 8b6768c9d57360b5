package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 800, cfg.Preview.MaxWidth)
	assert.Equal(t, 500, cfg.Preview.MaxHeight)
	assert.Equal(t, 95, cfg.Save.JPEGQuality)
	assert.Equal(t, ".png", cfg.Save.DefaultExtension)
	assert.Equal(t, float32(1000), cfg.Window.Width)

	fromEmpty, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, fromEmpty)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
format = "text"

[preview]
enabled = true
max_width = 1200

[save]
jpeg_quality = 80
default_extension = "jpg"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Preview.Enabled)
	assert.Equal(t, 1200, cfg.Preview.MaxWidth)
	assert.Equal(t, 500, cfg.Preview.MaxHeight)
	assert.Equal(t, 80, cfg.Save.JPEGQuality)
	assert.Equal(t, ".jpg", cfg.Save.DefaultExtension)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", "[log\nlevel="},
		{"quality too high", "[save]\njpeg_quality = 101"},
		{"unknown format", "[log]\nformat = \"xml\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogConfig{Level: "warn", Format: "json"}, false)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.WithField("path", "a.png").Warn("visible")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "a.png", entry["path"])
}

func TestNewLoggerDebugMode(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogConfig{Level: "error", Format: "json"}, true)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "Debug logging enabled")
}

func TestNewLoggerUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogConfig{Level: "chatty", Format: "text"}, false)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "Unknown log level")
}
