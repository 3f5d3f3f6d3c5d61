package harness

import (
	"github.com/artpar/rawpayload/internal/tui/views"
)

// State represents a snapshot of the TUI state for verification.
type State struct {
	FocusedPane   string // "content-type", "body"
	Mode          string // "NORMAL", "INSERT"
	ShowingHelp   bool
	ContentType   string
	IsJSON        bool
	IsFormEncoded bool
	LintState     string
	Value         string
	Notice        string
	NoticeIsError bool
}

// State captures the current session state.
func (s *TUISession) State() State {
	editor := s.model.Editor()
	flags := editor.Flags()

	pane := "body"
	if s.model.FocusedPane() == views.PaneContentType {
		pane = "content-type"
	}

	return State{
		FocusedPane:   pane,
		Mode:          editor.Mode().String(),
		ShowingHelp:   s.model.ShowingHelp(),
		ContentType:   editor.ContentType(),
		IsJSON:        flags.IsJSON,
		IsFormEncoded: flags.IsFormEncoded,
		LintState:     editor.LintState().String(),
		Value:         editor.Value(),
		Notice:        editor.Notice(),
		NoticeIsError: editor.NoticeIsError(),
	}
}
