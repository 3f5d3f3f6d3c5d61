// Package harness provides E2E testing utilities for rawpayload.
package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// E2EHarness is the main test orchestrator.
type E2EHarness struct {
	t       *testing.T
	tmpDir  string
	timeout time.Duration
}

// Config configures the harness.
type Config struct {
	Timeout time.Duration // Default: 5 seconds
}

// New creates a new E2E harness.
func New(t *testing.T, cfg Config) *E2EHarness {
	t.Helper()

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	tmpDir, err := os.MkdirTemp("", "rawpayload-e2e-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	h := &E2EHarness{
		t:       t,
		tmpDir:  tmpDir,
		timeout: cfg.Timeout,
	}
	t.Cleanup(h.cleanup)
	return h
}

func (h *E2EHarness) cleanup() {
	os.RemoveAll(h.tmpDir)
}

// TmpDir returns the temporary directory path.
func (h *E2EHarness) TmpDir() string {
	return h.tmpDir
}

// WriteFile writes content under the temporary directory and returns its path.
func (h *E2EHarness) WriteFile(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.tmpDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ConfigPath returns a config path inside the temporary directory.
func (h *E2EHarness) ConfigPath() string {
	return filepath.Join(h.tmpDir, "config.yaml")
}

// Timeout returns the configured timeout.
func (h *E2EHarness) Timeout() time.Duration {
	return h.timeout
}

// T returns the testing.T instance.
func (h *E2EHarness) T() *testing.T {
	return h.t
}

// CLI returns a CLI runner for this harness.
func (h *E2EHarness) CLI() *CLIRunner {
	return &CLIRunner{harness: h}
}

// TUI returns a TUI runner for this harness.
func (h *E2EHarness) TUI() *TUIRunner {
	return &TUIRunner{harness: h}
}
