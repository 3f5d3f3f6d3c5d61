package codeeditor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/rawpayload/internal/payload"
)

func typeRunes(m *Model, s string) bool {
	changed := false
	for _, r := range s {
		_, c := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		changed = changed || c
	}
	return changed
}

func TestNew(t *testing.T) {
	t.Run("starts with marker gutter and no lint", func(t *testing.T) {
		m := New()
		assert.Equal(t, []string{GutterLintMarkers}, m.Gutters())
		assert.False(t, m.Linting())
		assert.Empty(t, m.Mode())
		assert.Empty(t, m.Value())
		assert.Equal(t, 0, m.Refreshes())
	})
}

func TestModel_Properties(t *testing.T) {
	t.Run("mode", func(t *testing.T) {
		m := New()
		m.SetMode("application/xml")
		assert.Equal(t, "application/xml", m.Mode())
		assert.Equal(t, SyntaxXML, m.Syntax())
	})

	t.Run("gutters are copied", func(t *testing.T) {
		m := New()
		in := []string{GutterJSONLint, GutterLintMarkers}
		m.SetGutters(in)
		in[0] = "mutated"

		out := m.Gutters()
		assert.Equal(t, []string{GutterJSONLint, GutterLintMarkers}, out)
		out[0] = "mutated"
		assert.Equal(t, GutterJSONLint, m.Gutters()[0])
	})

	t.Run("lint runs on set and clears on disable", func(t *testing.T) {
		m := New()
		m.SetValue(`{"a":}`)
		m.SetLint(payload.LintJSON)
		assert.True(t, m.Linting())
		assert.Len(t, m.Annotations(), 1)

		m.SetLint(nil)
		assert.False(t, m.Linting())
		assert.Empty(t, m.Annotations())
	})
}

func TestModel_Changes(t *testing.T) {
	t.Run("SetValue does not invoke change callback", func(t *testing.T) {
		calls := 0
		m := New(WithOnChange(func(string) { calls++ }))
		m.SetValue("hello")
		assert.Equal(t, "hello", m.Value())
		assert.Equal(t, 0, calls)
	})

	t.Run("user edits invoke change callback", func(t *testing.T) {
		var got []string
		m := New(WithOnChange(func(v string) { got = append(got, v) }))
		m.Focus()

		changed := typeRunes(m, "ab")

		assert.True(t, changed)
		assert.Equal(t, []string{"a", "ab"}, got)
		assert.Equal(t, "ab", m.Value())
	})

	t.Run("blurred editor ignores input", func(t *testing.T) {
		calls := 0
		m := New(WithOnChange(func(string) { calls++ }))

		changed := typeRunes(m, "x")

		assert.False(t, changed)
		assert.Equal(t, 0, calls)
		assert.Empty(t, m.Value())
	})

	t.Run("edits re-run lint", func(t *testing.T) {
		m := New()
		m.SetLint(payload.LintJSON)
		m.SetValue(`{"a":1`)
		require.Len(t, m.Annotations(), 1)

		m.Focus()
		typeRunes(m, "}")

		assert.Empty(t, m.Annotations())
	})
}

func TestModel_Refresh(t *testing.T) {
	t.Run("counts refreshes and re-lints", func(t *testing.T) {
		m := New()
		m.lint = payload.LintJSON

		m.SetValue("[")
		m.Refresh()

		assert.Equal(t, 1, m.Refreshes())
		assert.Len(t, m.Annotations(), 1)
	})

	t.Run("reserves a row for the JSON lint gutter", func(t *testing.T) {
		m := New()
		m.SetSize(40, 10)
		assert.Equal(t, 10, m.textarea.Height())

		m.SetGutters([]string{GutterJSONLint, GutterLintMarkers})
		m.Refresh()
		assert.Equal(t, 9, m.textarea.Height())
	})
}

func TestModel_View(t *testing.T) {
	t.Run("blurred view shows text with marker gutter", func(t *testing.T) {
		m := New()
		m.SetSize(40, 4)
		m.SetValue("one\ntwo")

		lines := strings.Split(m.View(), "\n")

		require.Len(t, lines, 4)
		assert.Equal(t, "  one", lines[0])
		assert.Equal(t, "  two", lines[1])
	})

	t.Run("marks annotated lines", func(t *testing.T) {
		m := New()
		m.SetSize(40, 3)
		m.SetValue("{\n\"a\": }")
		m.SetLint(payload.LintJSON)

		lines := strings.Split(m.View(), "\n")

		assert.False(t, strings.HasPrefix(lines[0], "●"))
		assert.True(t, strings.HasPrefix(lines[1], "●"))
	})

	t.Run("json lint gutter adds status row", func(t *testing.T) {
		m := New()
		m.SetSize(60, 4)
		m.SetGutters([]string{GutterJSONLint, GutterLintMarkers})
		m.SetLint(payload.LintJSON)
		m.SetValue(`{"a": 1}`)
		m.Refresh()
		assert.Contains(t, m.View(), "valid JSON")

		m.SetValue(`{"a": }`)
		assert.Contains(t, m.View(), "1:7")
	})

	t.Run("without marker gutter lines are not prefixed", func(t *testing.T) {
		m := New()
		m.SetSize(40, 1)
		m.SetGutters(nil)
		m.SetValue("raw")

		assert.Equal(t, "raw", m.View())
	})
}

func TestModel_RawText(t *testing.T) {
	t.Run("keeps tabs and CRLF through SetValue", func(t *testing.T) {
		m := New()
		m.SetValue("a=\tb\r\nc")

		assert.Equal(t, "a=\tb\r\nc", m.Value())
		assert.Equal(t, "a=    b\n\nc", m.textarea.Value())
	})

	t.Run("typing keeps untouched bytes", func(t *testing.T) {
		var got []string
		m := New(WithOnChange(func(v string) { got = append(got, v) }))
		m.SetValue("{\r\n\t\"a\": 1\r\n}")
		m.Focus()

		typeRunes(m, "x")

		assert.Equal(t, "{\r\n\t\"a\": 1\r\n}x", m.Value())
		assert.Equal(t, []string{"{\r\n\t\"a\": 1\r\n}x"}, got)
	})

	t.Run("backspace removes the last raw rune", func(t *testing.T) {
		m := New()
		m.SetValue("k=\tv\x00w")
		m.Focus()

		m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

		assert.Equal(t, "k=\tv\x00", m.Value())
	})

	t.Run("markers follow shown lines after CRLF", func(t *testing.T) {
		m := New()
		m.SetSize(40, 4)
		m.SetValue("{\r\n\"a\": }")
		m.SetLint(payload.LintJSON)
		require.Len(t, m.Annotations(), 1)
		require.Equal(t, 2, m.Annotations()[0].Line)

		lines := strings.Split(m.View(), "\n")

		assert.False(t, strings.HasPrefix(lines[1], "●"))
		assert.True(t, strings.HasPrefix(lines[2], "●"))
	})

	t.Run("lint gutter names the severity", func(t *testing.T) {
		m := New()
		m.SetSize(80, 3)
		m.SetGutters([]string{GutterJSONLint})
		m.SetLint(payload.LintJSON)
		m.SetValue("[")

		assert.Contains(t, m.View(), "1:1 error:")
	})

	t.Run("lint sees the raw text", func(t *testing.T) {
		m := New()
		m.SetLint(payload.LintJSON)
		m.SetValue("{\r\n\t\"a\": 1\r\n}")
		assert.Empty(t, m.Annotations())
	})
}

func TestRawText_Edit(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		before string
		after  string
		want   string
	}{
		{"append", "a\tb", "a    b", "a    bc", "a\tbc"},
		{"insert before tab", "a\tb", "a    b", "xa    b", "xa\tb"},
		{"edit inside tab expansion", "a\tb", "a    b", "a   b", "a   b"},
		{"delete CR half of CRLF", "a\r\nb", "a\n\nb", "a\nb", "a\nb"},
		{"dropped control char stays", "a\x01b", "ab", "abc", "a\x01bc"},
		{"replace everything", "\t", "    ", "z", "z"},
		{"stale before is taken as is", "a\tb", "other", "other!", "other!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := newRawText(tt.raw)
			got := text.edit(tt.before, tt.after)
			assert.Equal(t, tt.want, got.raw)
			assert.True(t, got.matches(tt.after))
		})
	}
}

func TestModel_CharLimit(t *testing.T) {
	t.Run("SetValue is not truncated", func(t *testing.T) {
		m := New(WithCharLimit(5))
		m.SetValue("0123456789")

		assert.Equal(t, "0123456789", m.Value())
		assert.Equal(t, "0123456789", m.textarea.Value())
	})

	t.Run("user input stops at the limit", func(t *testing.T) {
		m := New(WithCharLimit(3))
		m.Focus()

		typeRunes(m, "abcdef")

		assert.Equal(t, "abc", m.Value())
	})

	t.Run("input past a long value is refused", func(t *testing.T) {
		m := New(WithCharLimit(3))
		m.SetValue("abcdef")
		m.Focus()

		changed := typeRunes(m, "g")

		assert.False(t, changed)
		assert.Equal(t, "abcdef", m.Value())
	})
}
