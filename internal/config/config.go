// Package config loads the editor settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the editor configuration.
type Config struct {
	ContentType    string        `yaml:"content_type"`
	NoticeDuration time.Duration `yaml:"notice_duration"`
	LogLevel       string        `yaml:"log_level"`
	Editor         EditorConfig  `yaml:"editor"`
}

// EditorConfig configures the embedded text area.
type EditorConfig struct {
	LineNumbers bool   `yaml:"line_numbers"`
	CharLimit   int    `yaml:"char_limit"`
	Placeholder string `yaml:"placeholder"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ContentType:    "application/json",
		NoticeDuration: 2 * time.Second,
		LogLevel:       "info",
		Editor: EditorConfig{
			LineNumbers: true,
			Placeholder: "Request body",
		},
	}
}

// DefaultPath returns ~/.rawpayload/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".rawpayload", "config.yaml")
	}
	return filepath.Join(home, ".rawpayload", "config.yaml")
}

// Load reads the config at path on top of the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.NoticeDuration <= 0 {
		return fmt.Errorf("notice_duration must be positive, got %s", c.NoticeDuration)
	}
	if c.Editor.CharLimit < 0 {
		return fmt.Errorf("editor.char_limit must not be negative, got %d", c.Editor.CharLimit)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
