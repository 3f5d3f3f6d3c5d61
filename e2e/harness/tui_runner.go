package harness

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/artpar/rawpayload/internal/config"
	"github.com/artpar/rawpayload/internal/tui/components"
	"github.com/artpar/rawpayload/internal/tui/views"
)

// TUIRunner provides TUI testing capabilities.
type TUIRunner struct {
	harness *E2EHarness
}

// TUISession represents an active TUI test session. Commands returned by the
// model are recorded, not run: cursor blinks and notice ticks would block.
type TUISession struct {
	runner  *TUIRunner
	model   *views.MainView
	t       *testing.T
	lastCmd tea.Cmd
	copied  []string
}

// SessionOption configures a session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	width, height int
	contentType   *string
	value         string
}

// WithSize sets the terminal size.
func WithSize(width, height int) SessionOption {
	return func(o *sessionOptions) {
		o.width, o.height = width, height
	}
}

// WithContentType sets the initial content type.
func WithContentType(ct string) SessionOption {
	return func(o *sessionOptions) {
		o.contentType = &ct
	}
}

// WithPayload sets the initial payload.
func WithPayload(value string) SessionOption {
	return func(o *sessionOptions) {
		o.value = value
	}
}

// Start starts a new TUI session.
func (r *TUIRunner) Start(t *testing.T, opts ...SessionOption) *TUISession {
	t.Helper()

	o := &sessionOptions{width: 120, height: 40}
	for _, opt := range opts {
		opt(o)
	}

	cfg := config.Default()
	if o.contentType != nil {
		cfg.ContentType = *o.contentType
	}

	s := &TUISession{
		runner: r,
		t:      t,
	}
	s.model = views.NewMainView(
		views.WithConfig(cfg),
		views.WithValue(o.value),
		views.WithEditorOptions(components.WithClipboard(func(text string) error {
			s.copied = append(s.copied, text)
			return nil
		})),
	)
	s.model.SetSize(o.width, o.height)
	t.Cleanup(s.model.Close)
	return s
}

// SendKey sends a key press.
func (s *TUISession) SendKey(key string) *TUISession {
	return s.send(parseKeyMsg(key))
}

// SendKeys sends multiple key presses.
func (s *TUISession) SendKeys(keys ...string) *TUISession {
	for _, key := range keys {
		s.SendKey(key)
	}
	return s
}

// Type sends a sequence of rune keys.
func (s *TUISession) Type(text string) *TUISession {
	for _, r := range text {
		if r == '\n' {
			s.send(tea.KeyMsg{Type: tea.KeyEnter})
			continue
		}
		s.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return s
}

// Resize sends a window size message.
func (s *TUISession) Resize(width, height int) *TUISession {
	return s.send(tea.WindowSizeMsg{Width: width, Height: height})
}

// SetContentType focuses the content-type field, replaces its text and
// commits it.
func (s *TUISession) SetContentType(ct string) *TUISession {
	s.SendKey("tab")
	for range s.model.Editor().ContentType() {
		s.SendKey("backspace")
	}
	return s.Type(ct).SendKey("enter")
}

func (s *TUISession) send(msg tea.Msg) *TUISession {
	updated, cmd := s.model.Update(msg)
	s.model = updated.(*views.MainView)
	s.lastCmd = cmd
	return s
}

// Quitting reports whether the last key asked the program to quit.
func (s *TUISession) Quitting() bool {
	if s.lastCmd == nil {
		return false
	}
	_, ok := s.lastCmd().(tea.QuitMsg)
	return ok
}

// Output returns the current TUI output.
func (s *TUISession) Output() string {
	return s.model.View()
}

// Model returns the underlying MainView for direct assertions.
func (s *TUISession) Model() *views.MainView {
	return s.model
}

// Copied returns the texts sent to the clipboard.
func (s *TUISession) Copied() []string {
	return s.copied
}

// FocusedPane returns the currently focused pane.
func (s *TUISession) FocusedPane() views.Pane {
	return s.model.FocusedPane()
}

// ShowingHelp returns true if help overlay is visible.
func (s *TUISession) ShowingHelp() bool {
	return s.model.ShowingHelp()
}

// parseKeyMsg converts key string to tea.KeyMsg.
func parseKeyMsg(key string) tea.KeyMsg {
	switch strings.ToLower(key) {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
