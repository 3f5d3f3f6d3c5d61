package codeeditor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/artpar/rawpayload/internal/payload"
	"github.com/artpar/rawpayload/internal/tui"
)

// Gutter identifiers understood by the editor.
const (
	// GutterLintMarkers marks lines carrying lint annotations.
	GutterLintMarkers = "lint-markers"
	// GutterJSONLint shows the message of the first JSON lint annotation.
	GutterJSONLint = "json-lint"
)

const markerWidth = 2

var (
	markerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func hasGutter(gutters []string, id string) bool {
	for _, g := range gutters {
		if g == id {
			return true
		}
	}
	return false
}

// markerColumn returns the marker gutter cell for each of lineCount lines.
func markerColumn(lineCount int, annotations []payload.Annotation) []string {
	marked := make(map[int]bool, len(annotations))
	for _, a := range annotations {
		marked[a.Line] = true
	}

	cells := make([]string, lineCount)
	for i := range cells {
		if marked[i+1] {
			cells[i] = markerStyle.Render("●") + " "
		} else {
			cells[i] = strings.Repeat(" ", markerWidth)
		}
	}
	return cells
}

// lintLine renders the JSON lint gutter row.
func lintLine(annotations []payload.Annotation, width int) string {
	if len(annotations) == 0 {
		return okStyle.Render("✓ valid JSON")
	}
	a := annotations[0]
	msg := fmt.Sprintf("✗ %d:%d %s: %s", a.Line, a.Column, a.Severity, a.Message)
	if width > 0 {
		msg = tui.Truncate(msg, width)
	}
	return messageStyle.Render(msg)
}
