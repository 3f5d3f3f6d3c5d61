package harness

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/artpar/rawpayload/internal/cli"
)

// CLIResult holds CLI execution results.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CLIRunner executes CLI commands.
type CLIRunner struct {
	harness *E2EHarness
}

// Run executes a CLI command with the given arguments and empty stdin.
func (r *CLIRunner) Run(args ...string) (*CLIResult, error) {
	return r.RunWithInput("", args...)
}

// RunWithInput executes a CLI command feeding stdin.
func (r *CLIRunner) RunWithInput(stdin string, args ...string) (*CLIResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.harness.timeout)
	defer cancel()

	start := time.Now()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := cli.NewRootCommand("test")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	result := &CLIResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		result.ExitCode = 1
	}

	return result, err
}

// Transform pipes payload through a transform subcommand.
func (r *CLIRunner) Transform(name, payload string) (*CLIResult, error) {
	return r.RunWithInput(payload, name)
}

// Classify runs the classify command.
func (r *CLIRunner) Classify(contentType string) (*CLIResult, error) {
	return r.Run("classify", contentType)
}
