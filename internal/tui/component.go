package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Component is the interface for all TUI components.
type Component interface {
	// Init initializes the component.
	Init() tea.Cmd

	// Update handles messages and returns the updated component.
	Update(msg tea.Msg) (Component, tea.Cmd)

	// View renders the component.
	View() string

	// Title returns the component title.
	Title() string

	// Focused returns true if the component is focused.
	Focused() bool

	// Focus sets the component as focused.
	Focus()

	// Blur removes focus from the component.
	Blur()

	// SetSize sets the component dimensions.
	SetSize(width, height int)

	// Width returns the component width.
	Width() int

	// Height returns the component height.
	Height() int
}

// Messages

// FocusMsg is sent when a component should gain focus.
type FocusMsg struct{}

// BlurMsg is sent when a component should lose focus.
type BlurMsg struct{}

// RefreshMsg asks a component to re-layout its content.
type RefreshMsg struct{}

// ResizeMsg is sent when the host resizes a component without a window resize.
type ResizeMsg struct {
	Width  int
	Height int
}

// Palette shared by components.
const (
	ColorAccent  = lipgloss.Color("62")
	ColorMuted   = lipgloss.Color("240")
	ColorTitle   = lipgloss.Color("229")
	ColorText    = lipgloss.Color("252")
	ColorError   = lipgloss.Color("160")
	ColorSuccess = lipgloss.Color("34")
)

// RenderTitle renders a title bar.
func RenderTitle(title string, width int, focused bool) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true)

	if focused {
		style = style.Foreground(ColorTitle).Background(ColorAccent)
	} else {
		style = style.Foreground(ColorText).Background(lipgloss.Color("238"))
	}

	return style.Render(title)
}

// RenderBorder renders content with a border.
func RenderBorder(content string, width, height int, focused bool) string {
	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderStyle(lipgloss.RoundedBorder())

	if focused {
		style = style.BorderForeground(ColorAccent)
	} else {
		style = style.BorderForeground(ColorMuted)
	}

	return style.Render(content)
}

// Truncate truncates a string to fit within a width.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// PadLines pads or cuts lines to exactly height entries.
func PadLines(lines []string, height int) []string {
	if height < 0 {
		height = 0
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines[:height]
}
