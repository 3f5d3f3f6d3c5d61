package views

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/rawpayload/internal/broadcast"
	"github.com/artpar/rawpayload/internal/config"
	"github.com/artpar/rawpayload/internal/tui"
	"github.com/artpar/rawpayload/internal/tui/codeeditor"
	"github.com/artpar/rawpayload/internal/tui/components"
)

// Pane represents which pane is focused.
type Pane int

const (
	PaneContentType Pane = iota
	PaneBody
)

// MainView hosts a payload editor under a content-type field. Committing the
// field publishes the content type to every attached editor.
type MainView struct {
	width       int
	height      int
	focusedPane Pane
	input       textinput.Model
	editor      *components.PayloadEditor
	hub         *broadcast.ContentTypeHub
	help        help.Model
	showHelp    bool
	logger      *slog.Logger
}

// Option configures the MainView.
type Option func(*viewOptions)

type viewOptions struct {
	cfg        config.Config
	logger     *slog.Logger
	value      string
	editorOpts []components.PayloadEditorOption
}

// WithConfig sets the configuration.
func WithConfig(cfg config.Config) Option {
	return func(o *viewOptions) {
		o.cfg = cfg
	}
}

// WithLogger sets the logger shared with the editor.
func WithLogger(l *slog.Logger) Option {
	return func(o *viewOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithValue sets the initial payload.
func WithValue(value string) Option {
	return func(o *viewOptions) {
		o.value = value
	}
}

// WithEditorOptions passes extra options to the payload editor.
func WithEditorOptions(opts ...components.PayloadEditorOption) Option {
	return func(o *viewOptions) {
		o.editorOpts = append(o.editorOpts, opts...)
	}
}

// NewMainView creates a new main view.
func NewMainView(opts ...Option) *MainView {
	o := &viewOptions{
		cfg:    config.Default(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}

	input := textinput.New()
	input.Prompt = "Content-Type: "
	input.Placeholder = "application/json"
	input.SetValue(o.cfg.ContentType)

	editorOpts := []components.PayloadEditorOption{
		components.WithLogger(o.logger),
		components.WithNoticeDuration(o.cfg.NoticeDuration),
		components.WithEditorOptions(
			codeeditor.WithLineNumbers(o.cfg.Editor.LineNumbers),
			codeeditor.WithCharLimit(o.cfg.Editor.CharLimit),
			codeeditor.WithPlaceholder(o.cfg.Editor.Placeholder),
		),
	}
	editorOpts = append(editorOpts, o.editorOpts...)

	v := &MainView{
		input:  input,
		editor: components.NewPayloadEditor(editorOpts...),
		hub:    broadcast.NewContentTypeHub(broadcast.WithLogger(o.logger)),
		help:   help.New(),
		logger: o.logger,
	}
	v.editor.Attach(v.hub)
	v.editor.SetValue(o.value)
	v.hub.Publish(o.cfg.ContentType)
	v.focusPane(PaneBody)
	return v
}

// Init initializes the view.
func (v *MainView) Init() tea.Cmd {
	return v.editor.Init()
}

// Update handles messages.
func (v *MainView) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		v.editor.Refresh()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	// Ticks and blinks go to both panes.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	cmds = append(cmds, cmd)
	_, cmd = v.editor.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

func (v *MainView) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return v, tea.Quit
	}

	if v.showHelp {
		if msg.Type == tea.KeyEsc || msg.String() == "?" {
			v.showHelp = false
		}
		return v, nil
	}

	// While editing, every key belongs to the editor.
	if v.focusedPane == PaneBody && v.editor.IsEditing() {
		_, cmd := v.editor.Update(msg)
		return v, cmd
	}

	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		return v, v.toggleFocus()
	}

	if v.focusedPane == PaneContentType {
		switch msg.Type {
		case tea.KeyEnter:
			v.commitContentType()
			return v, v.focusPane(PaneBody)
		case tea.KeyEsc:
			v.input.SetValue(v.editor.ContentType())
			return v, v.focusPane(PaneBody)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case "q":
		return v, tea.Quit
	case "?":
		v.showHelp = true
		return v, nil
	case "c":
		return v, v.focusPane(PaneContentType)
	}

	_, cmd := v.editor.Update(msg)
	return v, cmd
}

func (v *MainView) commitContentType() {
	ct := strings.TrimSpace(v.input.Value())
	v.input.SetValue(ct)
	v.logger.Info("content type committed", "content_type", ct)
	v.hub.Publish(ct)
}

func (v *MainView) toggleFocus() tea.Cmd {
	if v.focusedPane == PaneBody {
		return v.focusPane(PaneContentType)
	}
	return v.focusPane(PaneBody)
}

func (v *MainView) focusPane(pane Pane) tea.Cmd {
	v.focusedPane = pane
	if pane == PaneContentType {
		v.editor.Blur()
		return v.input.Focus()
	}
	v.input.Blur()
	v.editor.Focus()
	return nil
}

// SetSize sets the view size and lays out the panes.
func (v *MainView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.input.Width = width - len(v.input.Prompt) - 2

	// Content-type row and status bar.
	editorHeight := height - 2
	if editorHeight < 3 {
		editorHeight = 3
	}
	v.editor.SetSize(width, editorHeight)
}

// View renders the view.
func (v *MainView) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}
	if v.showHelp {
		return v.renderHelp()
	}

	return strings.Join([]string{
		v.input.View(),
		v.editor.View(),
		v.renderStatusBar(),
	}, "\n")
}

func (v *MainView) renderStatusBar() string {
	flags := v.editor.Flags()
	var kind string
	switch {
	case flags.IsJSON:
		kind = "JSON"
	case flags.IsFormEncoded:
		kind = "FORM"
	default:
		kind = "RAW"
	}

	hint := "tab/c: content type  ?: help  q: quit"
	if v.focusedPane == PaneContentType {
		hint = "enter: apply  esc: cancel"
	}

	status := fmt.Sprintf("%s  %s  %s  %d bytes",
		v.editor.Mode(), kind, v.editor.LintState(), len(v.editor.Value()))
	if notice := v.editor.Notice(); notice != "" {
		color := tui.ColorSuccess
		if v.editor.NoticeIsError() {
			color = tui.ColorError
		}
		status += "  " + lipgloss.NewStyle().Foreground(color).Render(notice)
	}

	style := lipgloss.NewStyle().Foreground(tui.ColorMuted)
	return style.Render(status) + "  " + style.Render(hint)
}

func (v *MainView) renderHelp() string {
	v.help.ShowAll = true
	body := v.help.View(components.DefaultPayloadKeyMap())
	content := tui.RenderTitle("Keys", v.width-2, true) + "\n" + body +
		"\n\ntab/c  edit content type\nq      quit\nesc/?  close help"
	return tui.RenderBorder(content, v.width-2, v.height-2, true)
}

// Title returns the view title.
func (v *MainView) Title() string {
	return "Raw payload"
}

// Focused always returns true; the main view owns the screen.
func (v *MainView) Focused() bool {
	return true
}

// Focus is a no-op.
func (v *MainView) Focus() {}

// Blur is a no-op.
func (v *MainView) Blur() {}

// Width returns the width.
func (v *MainView) Width() int {
	return v.width
}

// Height returns the height.
func (v *MainView) Height() int {
	return v.height
}

// FocusedPane returns the focused pane.
func (v *MainView) FocusedPane() Pane {
	return v.focusedPane
}

// Editor returns the payload editor.
func (v *MainView) Editor() *components.PayloadEditor {
	return v.editor
}

// Hub returns the content-type hub the editor is attached to.
func (v *MainView) Hub() *broadcast.ContentTypeHub {
	return v.hub
}

// ShowingHelp returns true if the help overlay is visible.
func (v *MainView) ShowingHelp() bool {
	return v.showHelp
}

// Close detaches the editor from the hub.
func (v *MainView) Close() {
	v.editor.Detach()
}

var _ tui.Component = (*MainView)(nil)
