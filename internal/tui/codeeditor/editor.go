// Package codeeditor is the text editing widget embedded by the payload
// editor. It wraps a bubbles textarea and adds a syntax mode, an optional lint
// function and a configurable set of gutters.
package codeeditor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/artpar/rawpayload/internal/payload"
	"github.com/artpar/rawpayload/internal/tui"
)

// Model is the embedded editor widget.
type Model struct {
	textarea    textarea.Model
	text        rawText
	mode        string
	lint        payload.LintFunc
	annotations []payload.Annotation
	gutters     []string
	width       int
	height      int
	refreshes   int
	onChange    func(value string)
}

// Option configures a Model.
type Option func(*Model)

// WithLineNumbers toggles line numbers in the focused text area.
func WithLineNumbers(show bool) Option {
	return func(m *Model) {
		m.textarea.ShowLineNumbers = show
	}
}

// WithCharLimit limits the number of characters a user can type; 0 means
// unlimited. SetValue is not limited.
func WithCharLimit(limit int) Option {
	return func(m *Model) {
		m.textarea.CharLimit = limit
	}
}

// WithPlaceholder sets the text shown when the editor is empty.
func WithPlaceholder(text string) Option {
	return func(m *Model) {
		m.textarea.Placeholder = text
	}
}

// WithOnChange registers the callback invoked after a user edit changes the
// text. Programmatic SetValue calls do not invoke it.
func WithOnChange(fn func(value string)) Option {
	return func(m *Model) {
		m.onChange = fn
	}
}

// New creates an editor with the lint marker gutter and no lint function.
func New(opts ...Option) *Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true

	m := &Model{
		textarea: ta,
		gutters:  []string{GutterLintMarkers},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mode returns the syntax mode identifier.
func (m *Model) Mode() string {
	return m.mode
}

// SetMode sets the syntax mode identifier, usually a MIME type.
func (m *Model) SetMode(mode string) {
	m.mode = mode
}

// Syntax returns the highlighting family for the current mode and text.
func (m *Model) Syntax() Syntax {
	return DetectSyntax(m.mode, m.Value())
}

// SetLint sets the lint function. nil disables linting.
func (m *Model) SetLint(fn payload.LintFunc) {
	m.lint = fn
	m.relint()
}

// Linting returns true if a lint function is set.
func (m *Model) Linting() bool {
	return m.lint != nil
}

// Annotations returns the findings of the last lint run.
func (m *Model) Annotations() []payload.Annotation {
	return m.annotations
}

// SetGutters replaces the ordered list of gutter identifiers.
func (m *Model) SetGutters(gutters []string) {
	m.gutters = append([]string(nil), gutters...)
}

// Gutters returns a copy of the gutter identifiers.
func (m *Model) Gutters() []string {
	return append([]string(nil), m.gutters...)
}

// Value returns the current text. Tabs, carriage returns and other characters
// the text area cannot display are kept as they were set.
func (m *Model) Value() string {
	return m.text.raw
}

// SetValue replaces the text without invoking the change callback.
func (m *Model) SetValue(value string) {
	if m.text.raw == value && m.text.matches(m.textarea.Value()) {
		return
	}

	limit := m.textarea.CharLimit
	m.textarea.CharLimit = 0
	m.textarea.SetValue(value)
	m.textarea.CharLimit = limit

	m.text = newRawText(value)
	m.relint()
}

// Refresh re-runs the lint function and re-applies the layout. Call it after
// programmatic changes or when the editor becomes visible again.
func (m *Model) Refresh() {
	m.refreshes++
	m.relint()
	m.layout()
}

// Refreshes returns how many times Refresh was called.
func (m *Model) Refreshes() int {
	return m.refreshes
}

func (m *Model) relint() {
	if m.lint == nil {
		m.annotations = nil
		return
	}
	m.annotations = m.lint(m.Value())
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	height := m.height
	if hasGutter(m.gutters, GutterJSONLint) {
		height--
	}
	if height < 1 {
		height = 1
	}
	m.textarea.SetWidth(m.width)
	m.textarea.SetHeight(height)
}

// Focus gives the text area keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.textarea.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.textarea.Blur()
}

// Focused returns true if the text area has focus.
func (m *Model) Focused() bool {
	return m.textarea.Focused()
}

// SetSize sets the outer dimensions and re-applies the layout.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.layout()
}

// Width returns the width.
func (m *Model) Width() int {
	return m.width
}

// Height returns the height.
func (m *Model) Height() int {
	return m.height
}

// Update forwards input to the text area and reports whether the text changed.
func (m *Model) Update(msg tea.Msg) (tea.Cmd, bool) {
	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)

	after := m.textarea.Value()
	if after == before {
		return cmd, false
	}
	m.text = m.text.edit(before, after)
	m.relint()
	if m.onChange != nil {
		m.onChange(m.Value())
	}
	return cmd, true
}

// View renders the editor. The focused editor shows the live text area; the
// blurred editor shows highlighted text with the marker gutter.
func (m *Model) View() string {
	var body string
	if m.Focused() {
		body = m.textarea.View()
	} else {
		body = m.highlightedView()
	}

	if hasGutter(m.gutters, GutterJSONLint) {
		body += "\n" + lintLine(m.annotations, m.width)
	}
	return body
}

func (m *Model) highlightedView() string {
	height := m.textarea.Height()
	lines := strings.Split(m.textarea.Value(), "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}

	h := HighlighterFor(m.Syntax())
	showMarkers := hasGutter(m.gutters, GutterLintMarkers)
	markers := markerColumn(len(lines), m.shownAnnotations())

	out := make([]string, len(lines))
	for i, line := range lines {
		text := h.HighlightLine(line)
		if showMarkers {
			text = markers[i] + text
		}
		out[i] = text
	}
	if height > 0 {
		out = tui.PadLines(out, height)
	}
	return strings.Join(out, "\n")
}

// shownAnnotations returns the annotations with lines numbered as the text
// area shows them.
func (m *Model) shownAnnotations() []payload.Annotation {
	out := make([]payload.Annotation, len(m.annotations))
	for i, a := range m.annotations {
		a.Line = m.text.shownLine(a.Line)
		out[i] = a
	}
	return out
}
