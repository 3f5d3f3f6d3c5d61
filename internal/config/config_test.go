package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "application/json", cfg.ContentType)
	assert.Equal(t, 2*time.Second, cfg.NoticeDuration)
	assert.True(t, cfg.Editor.LineNumbers)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("overrides only given keys", func(t *testing.T) {
		path := writeFile(t, `
content_type: application/x-www-form-urlencoded
notice_duration: 5s
editor:
  char_limit: 4096
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "application/x-www-form-urlencoded", cfg.ContentType)
		assert.Equal(t, 5*time.Second, cfg.NoticeDuration)
		assert.Equal(t, 4096, cfg.Editor.CharLimit)
		assert.True(t, cfg.Editor.LineNumbers)
		assert.Equal(t, "Request body", cfg.Editor.Placeholder)
	})

	t.Run("can disable line numbers", func(t *testing.T) {
		cfg, err := Load(writeFile(t, "editor:\n  line_numbers: false\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Editor.LineNumbers)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "content_type: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeFile(t, "notice_duration: -1s\n"))
		assert.ErrorContains(t, err, "notice_duration")

		_, err = Load(writeFile(t, "log_level: loud\n"))
		assert.ErrorContains(t, err, "loud")
	})
}

func TestSave(t *testing.T) {
	t.Run("round trips through load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.yaml")
		cfg := Default()
		cfg.ContentType = "text/plain"
		cfg.NoticeDuration = 3 * time.Second

		require.NoError(t, Save(path, cfg))
		loaded, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}
