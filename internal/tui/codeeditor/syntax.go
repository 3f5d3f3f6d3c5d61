package codeeditor

import "strings"

// Syntax is the highlighting family selected from an editor mode.
type Syntax string

const (
	SyntaxJSON  Syntax = "json"
	SyntaxXML   Syntax = "xml"
	SyntaxHTML  Syntax = "html"
	SyntaxPlain Syntax = "text"
)

// String returns the string representation of the syntax.
func (s Syntax) String() string {
	return string(s)
}

// Upper returns the uppercase string for display.
func (s Syntax) Upper() string {
	return strings.ToUpper(string(s))
}

// DetectSyntax maps a mode identifier to a syntax family. An empty or unknown
// mode falls back to sniffing the text itself.
func DetectSyntax(mode string, text string) Syntax {
	m := strings.ToLower(mode)

	switch {
	case strings.Contains(m, "/json"), strings.Contains(m, "+json"):
		return SyntaxJSON
	case strings.Contains(m, "/xml"), strings.Contains(m, "+xml"):
		return SyntaxXML
	case strings.Contains(m, "/html"):
		return SyntaxHTML
	case m != "":
		return SyntaxPlain
	}

	return sniffSyntax(text)
}

func sniffSyntax(text string) Syntax {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return SyntaxPlain
	}

	switch trimmed[0] {
	case '{', '[':
		return SyntaxJSON
	case '<':
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
			return SyntaxHTML
		}
		return SyntaxXML
	}
	return SyntaxPlain
}
