package codeeditor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Highlighter renders one line of text with syntax colors.
type Highlighter interface {
	HighlightLine(line string) string
}

// HighlighterFor returns the highlighter for a syntax family.
func HighlighterFor(s Syntax) Highlighter {
	switch s {
	case SyntaxJSON:
		return NewJSONHighlighter()
	case SyntaxXML, SyntaxHTML:
		return NewMarkupHighlighter()
	default:
		return plainHighlighter{}
	}
}

type plainHighlighter struct{}

func (plainHighlighter) HighlightLine(line string) string { return line }

// JSONHighlighter colors keys, strings, numbers and literals.
type JSONHighlighter struct {
	keyStyle     lipgloss.Style
	stringStyle  lipgloss.Style
	numberStyle  lipgloss.Style
	boolStyle    lipgloss.Style
	nullStyle    lipgloss.Style
	bracketStyle lipgloss.Style
	punctStyle   lipgloss.Style
}

// NewJSONHighlighter creates a new JSON highlighter with default styles.
func NewJSONHighlighter() *JSONHighlighter {
	return &JSONHighlighter{
		keyStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("141")), // Purple
		stringStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // Green
		numberStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // Orange
		boolStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // Blue
		nullStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // Gray
		bracketStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		punctStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// HighlightLine colors a single line. Lines are highlighted independently,
// so a string spanning lines is only colored on its first line.
func (h *JSONHighlighter) HighlightLine(line string) string {
	chars := []rune(line)
	var out strings.Builder

	for i := 0; i < len(chars); {
		ch := chars[i]
		switch {
		case ch == '"':
			end := scanString(chars, i)
			str := string(chars[i:end])
			if nextNonSpace(chars, end) == ':' {
				out.WriteString(h.keyStyle.Render(str))
			} else {
				out.WriteString(h.stringStyle.Render(str))
			}
			i = end

		case ch == '{' || ch == '}' || ch == '[' || ch == ']':
			out.WriteString(h.bracketStyle.Render(string(ch)))
			i++

		case ch == ':' || ch == ',':
			out.WriteString(h.punctStyle.Render(string(ch)))
			i++

		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := scanNumber(chars, i)
			out.WriteString(h.numberStyle.Render(string(chars[i:end])))
			i = end

		case isLetter(ch):
			end := i
			for end < len(chars) && isLetter(chars[end]) {
				end++
			}
			word := string(chars[i:end])
			switch word {
			case "true", "false":
				out.WriteString(h.boolStyle.Render(word))
			case "null":
				out.WriteString(h.nullStyle.Render(word))
			default:
				out.WriteString(word)
			}
			i = end

		default:
			out.WriteRune(ch)
			i++
		}
	}
	return out.String()
}

func scanString(chars []rune, start int) int {
	i := start + 1
	for i < len(chars) {
		switch chars[i] {
		case '\\':
			i += 2
			continue
		case '"':
			return i + 1
		}
		i++
	}
	return len(chars)
}

func scanNumber(chars []rune, start int) int {
	i := start
	if chars[i] == '-' {
		i++
	}
	for i < len(chars) && strings.ContainsRune("0123456789.eE+-", chars[i]) {
		i++
	}
	if i == start {
		i++
	}
	return i
}

func nextNonSpace(chars []rune, from int) rune {
	for i := from; i < len(chars); i++ {
		if chars[i] != ' ' && chars[i] != '\t' {
			return chars[i]
		}
	}
	return 0
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// MarkupHighlighter colors tags, attributes and comments in XML or HTML.
type MarkupHighlighter struct {
	tagStyle       lipgloss.Style
	attrNameStyle  lipgloss.Style
	attrValueStyle lipgloss.Style
	commentStyle   lipgloss.Style
	punctStyle     lipgloss.Style
}

// NewMarkupHighlighter creates a new markup highlighter with default styles.
func NewMarkupHighlighter() *MarkupHighlighter {
	return &MarkupHighlighter{
		tagStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // Blue
		attrNameStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("141")), // Purple
		attrValueStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // Green
		commentStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // Gray
		punctStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// HighlightLine colors a single line of markup. Text between tags is left as is.
func (h *MarkupHighlighter) HighlightLine(line string) string {
	var out strings.Builder
	rest := line

	for rest != "" {
		open := strings.IndexByte(rest, '<')
		if open == -1 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:open])
		rest = rest[open:]

		if strings.HasPrefix(rest, "<!--") || strings.HasPrefix(rest, "<!") || strings.HasPrefix(rest, "<?") {
			end := strings.IndexByte(rest, '>')
			if end == -1 {
				out.WriteString(h.commentStyle.Render(rest))
				break
			}
			out.WriteString(h.commentStyle.Render(rest[:end+1]))
			rest = rest[end+1:]
			continue
		}

		end := strings.IndexByte(rest, '>')
		if end == -1 {
			out.WriteString(h.tag(rest, false))
			break
		}
		out.WriteString(h.tag(rest[:end], true))
		rest = rest[end+1:]
	}
	return out.String()
}

// tag renders "<name attr=value" (without the closing '>').
func (h *MarkupHighlighter) tag(tag string, closed bool) string {
	var out strings.Builder

	prefix := "<"
	if strings.HasPrefix(tag, "</") {
		prefix = "</"
	}
	body := tag[len(prefix):]
	selfClosing := strings.HasSuffix(body, "/")
	body = strings.TrimSuffix(body, "/")

	nameEnd := strings.IndexAny(body, " \t")
	if nameEnd == -1 {
		nameEnd = len(body)
	}
	out.WriteString(h.punctStyle.Render(prefix))
	out.WriteString(h.tagStyle.Render(body[:nameEnd]))

	h.attrs(&out, body[nameEnd:])

	switch {
	case selfClosing && closed:
		out.WriteString(h.punctStyle.Render("/>"))
	case selfClosing:
		out.WriteString(h.punctStyle.Render("/"))
	case closed:
		out.WriteString(h.punctStyle.Render(">"))
	}
	return out.String()
}

func (h *MarkupHighlighter) attrs(out *strings.Builder, rest string) {
	for rest != "" {
		if rest[0] == ' ' || rest[0] == '\t' {
			out.WriteByte(rest[0])
			rest = rest[1:]
			continue
		}

		nameEnd := strings.IndexAny(rest, "= \t")
		if nameEnd == -1 {
			out.WriteString(h.attrNameStyle.Render(rest))
			return
		}
		out.WriteString(h.attrNameStyle.Render(rest[:nameEnd]))
		rest = rest[nameEnd:]
		if rest[0] != '=' {
			continue
		}
		out.WriteString(h.punctStyle.Render("="))
		rest = rest[1:]

		valueEnd := strings.IndexAny(rest, " \t")
		if rest != "" && (rest[0] == '"' || rest[0] == '\'') {
			if q := strings.IndexByte(rest[1:], rest[0]); q != -1 {
				valueEnd = q + 2
			} else {
				valueEnd = -1
			}
		}
		if valueEnd == -1 {
			valueEnd = len(rest)
		}
		out.WriteString(h.attrValueStyle.Render(rest[:valueEnd]))
		rest = rest[valueEnd:]
	}
}
