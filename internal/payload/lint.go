package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"
)

// Severity of a lint annotation.
type Severity int

const (
	SeverityError Severity = iota
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Annotation is a lint finding. Line and Column are 1-based.
type Annotation struct {
	Line     int
	Column   int
	Message  string
	Severity Severity
}

// LintFunc validates editor text. A nil LintFunc means linting is disabled.
type LintFunc func(text string) []Annotation

// LintJSON reports the first syntax error in text. Blank text is not linted.
func LintJSON(text string) []Annotation {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var v any
	err := json.Unmarshal([]byte(text), &v)
	if err == nil {
		return nil
	}

	offset := int64(len(text))
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	line, col := position([]byte(text), offset)
	return []Annotation{{
		Line:     line,
		Column:   col,
		Message:  err.Error(),
		Severity: SeverityError,
	}}
}

// position converts the decoder offset into a 1-based line and column
// pointing at the offending character.
func position(src []byte, offset int64) (int, int) {
	pos := int(offset) - 1
	if pos < 0 {
		pos = 0
	}
	if pos > len(src) {
		pos = len(src)
	}
	head := src[:pos]
	line := bytes.Count(head, []byte{'\n'}) + 1
	lineStart := bytes.LastIndexByte(head, '\n') + 1
	return line, utf8.RuneCount(head[lineStart:]) + 1
}
