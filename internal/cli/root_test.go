package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/rawpayload/internal/tui/views"
)

func TestNewRootCommand(t *testing.T) {
	t.Run("creates root command", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		assert.NotNil(t, cmd)
		assert.Equal(t, "rawpayload", cmd.Use)
		assert.Equal(t, "1.0.0", cmd.Version)
	})

	t.Run("has content-type flag", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		flag := cmd.Flags().Lookup("content-type")
		require.NotNil(t, flag)
		assert.Equal(t, "t", flag.Shorthand)
	})

	t.Run("has file flag", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		flag := cmd.Flags().Lookup("file")
		require.NotNil(t, flag)
		assert.Equal(t, "f", flag.Shorthand)
	})

	t.Run("has config and log-file flags", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
		assert.NotNil(t, cmd.Flags().Lookup("log-file"))
	})

	t.Run("has subcommands", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		for _, name := range []string{"format", "minify", "encode", "decode", "classify", "config"} {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, name)
			assert.Contains(t, sub.Use, name)
		}
	})
}

func TestBuildMainView(t *testing.T) {
	missingConfig := func(t *testing.T) string {
		return filepath.Join(t.TempDir(), "config.yaml")
	}

	t.Run("uses config defaults", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		opts := &RootOptions{ConfigPath: missingConfig(t)}

		view, closeFn, err := buildMainView(cmd, opts)
		require.NoError(t, err)
		defer closeFn()

		assert.Equal(t, "application/json", view.Editor().ContentType())
		assert.Empty(t, view.Editor().Value())
	})

	t.Run("content-type flag overrides config", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		opts := &RootOptions{ConfigPath: missingConfig(t)}
		require.NoError(t, cmd.Flags().Set("content-type", "application/x-www-form-urlencoded"))
		opts.ContentType = "application/x-www-form-urlencoded"

		view, closeFn, err := buildMainView(cmd, opts)
		require.NoError(t, err)
		defer closeFn()

		assert.True(t, view.Editor().Flags().IsFormEncoded)
	})

	t.Run("loads payload file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "body.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0644))

		cmd := NewRootCommand("1.0.0")
		view, closeFn, err := buildMainView(cmd, &RootOptions{ConfigPath: missingConfig(t), File: path})
		require.NoError(t, err)
		defer closeFn()

		assert.Equal(t, `{"a":1}`, view.Editor().Value())
	})

	t.Run("fails for missing payload file", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		_, _, err := buildMainView(cmd, &RootOptions{ConfigPath: missingConfig(t), File: "/non/existent/body.json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read payload file")
	})

	t.Run("fails for malformed config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("content_type: [unclosed"), 0644))

		cmd := NewRootCommand("1.0.0")
		_, _, err := buildMainView(cmd, &RootOptions{ConfigPath: path})
		assert.Error(t, err)
	})

	t.Run("writes log file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "rawpayload.log")

		cmd := NewRootCommand("1.0.0")
		_, closeFn, err := buildMainView(cmd, &RootOptions{ConfigPath: missingConfig(t), LogFile: logPath})
		require.NoError(t, err)
		closeFn()

		content, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "starting")
		assert.Contains(t, string(content), "content_type=application/json")
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("discards without path", func(t *testing.T) {
		logger, closeFn, err := newLogger("", "info")
		require.NoError(t, err)
		assert.NoError(t, closeFn())
		assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	})

	t.Run("honors level", func(t *testing.T) {
		logger, closeFn, err := newLogger(filepath.Join(t.TempDir(), "x.log"), "warn")
		require.NoError(t, err)
		defer closeFn()

		assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
		assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, _, err := newLogger(filepath.Join(t.TempDir(), "x.log"), "loud")
		assert.Error(t, err)
	})
}

func TestTuiModel(t *testing.T) {
	t.Run("Init returns view init", func(t *testing.T) {
		view := views.NewMainView()
		model := tuiModel{view: view}
		cmd := model.Init()
		assert.Nil(t, cmd)
	})

	t.Run("Update handles messages", func(t *testing.T) {
		view := views.NewMainView()
		model := tuiModel{view: view}

		msg := tea.WindowSizeMsg{Width: 120, Height: 40}
		updated, _ := model.Update(msg)

		require.NotNil(t, updated)
		assert.Equal(t, 120, updated.(tuiModel).view.Width())
	})

	t.Run("View returns string", func(t *testing.T) {
		view := views.NewMainView()
		view.SetSize(120, 40)
		model := tuiModel{view: view}

		output := model.View()
		assert.NotEmpty(t, output)
	})
}
