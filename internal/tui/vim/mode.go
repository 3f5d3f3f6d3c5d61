package vim

import "github.com/charmbracelet/lipgloss"

// Mode represents the editing mode of the payload editor.
type Mode int

const (
	// ModeNormal routes keys to editor commands (format, encode, ...).
	ModeNormal Mode = iota
	// ModeInsert routes keys to the text area.
	ModeInsert
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}

// ModeManager handles mode state and transitions.
type ModeManager struct {
	current Mode
}

// NewModeManager creates a new mode manager starting in normal mode.
func NewModeManager() *ModeManager {
	return &ModeManager{current: ModeNormal}
}

// Current returns the current mode.
func (m *ModeManager) Current() Mode {
	return m.current
}

// SetMode changes the current mode and reports whether it changed.
func (m *ModeManager) SetMode(mode Mode) bool {
	if m.current == mode {
		return false
	}
	m.current = mode
	return true
}

// IsInsert returns true if in insert mode.
func (m *ModeManager) IsInsert() bool {
	return m.current == ModeInsert
}

// Reset returns to normal mode.
func (m *ModeManager) Reset() {
	m.current = ModeNormal
}

// Badge renders the mode as a colored status bar label.
func (m Mode) Badge() string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch m {
	case ModeInsert:
		style = style.Background(lipgloss.Color("34")).Foreground(lipgloss.Color("255"))
	default:
		style = style.Background(lipgloss.Color("62")).Foreground(lipgloss.Color("229"))
	}
	return style.Render(m.String())
}
