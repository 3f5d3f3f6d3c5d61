package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/artpar/rawpayload/internal/config"
	"github.com/artpar/rawpayload/internal/tui/views"
)

// RootOptions holds the flags of the root command.
type RootOptions struct {
	ContentType string
	File        string
	ConfigPath  string
	LogFile     string
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "rawpayload",
		Short:   "rawpayload - A raw request body editor",
		Long:    "rawpayload edits raw HTTP request bodies with JSON format/minify and form URL-encode/decode.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ContentType, "content-type", "t", "", "Content type of the payload (overrides config)")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Load the payload from a file")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default ~/.rawpayload/config.yaml)")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")

	cmd.AddCommand(NewFormatCommand())
	cmd.AddCommand(NewMinifyCommand())
	cmd.AddCommand(NewEncodeCommand())
	cmd.AddCommand(NewDecodeCommand())
	cmd.AddCommand(NewClassifyCommand())
	cmd.AddCommand(NewConfigCommand(&opts.ConfigPath))

	return cmd
}

// tuiModel wraps the MainView for bubbletea
type tuiModel struct {
	view *views.MainView
}

func (m tuiModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.view.Update(msg)
	m.view = updated.(*views.MainView)
	return m, cmd
}

func (m tuiModel) View() string {
	return m.view.View()
}

// runTUI starts the TUI application
func runTUI(cmd *cobra.Command, opts *RootOptions) error {
	view, closeFn, err := buildMainView(cmd, opts)
	if err != nil {
		return err
	}
	defer closeFn()

	p := tea.NewProgram(tuiModel{view: view}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}
	return nil
}

// buildMainView resolves config, logging and the initial payload into a view.
// The returned func releases the log file and detaches the editor.
func buildMainView(cmd *cobra.Command, opts *RootOptions) (*views.MainView, func(), error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("content-type") {
		cfg.ContentType = opts.ContentType
	}

	var value string
	if opts.File != "" {
		content, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read payload file: %w", err)
		}
		value = string(content)
	}

	logger, closeLog, err := newLogger(opts.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("starting", "content_type", cfg.ContentType, "file", opts.File)

	view := views.NewMainView(
		views.WithConfig(cfg),
		views.WithLogger(logger),
		views.WithValue(value),
	)
	return view, func() {
		view.Close()
		_ = closeLog()
	}, nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// newLogger returns a text logger writing to path, or a discarding logger when
// path is empty. The terminal belongs to the TUI.
func newLogger(path, level string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}

	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return newTextLogger(f, lvl), f.Close, nil
}

func newTextLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
