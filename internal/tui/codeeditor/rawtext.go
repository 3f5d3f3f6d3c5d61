package codeeditor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// rawText is the caller's text together with the copy the text area shows.
// The text area rewrites tabs, carriage returns and control characters on
// insert, so user edits are spliced back into the raw text instead of
// replacing it.
type rawText struct {
	raw   string
	shown []rune
	spans []span
}

// span maps one raw rune, or a CRLF pair, to the runes the text area shows
// for it.
type span struct {
	rawStart, rawEnd     int
	shownStart, shownEnd int
}

func newRawText(raw string) rawText {
	t := rawText{raw: raw}
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		start := len(t.shown)
		t.shown = append(t.shown, shownRunes(r)...)
		// A CRLF pair is a single span.
		if r == '\r' && i+1 < len(raw) && raw[i+1] == '\n' {
			t.shown = append(t.shown, '\n')
			size++
		}
		t.spans = append(t.spans, span{
			rawStart:   i,
			rawEnd:     i + size,
			shownStart: start,
			shownEnd:   len(t.shown),
		})
		i += size
	}
	return t
}

// shownRunes mirrors the textarea input sanitizer.
func shownRunes(r rune) []rune {
	switch {
	case r == utf8.RuneError:
		return nil
	case r == '\r' || r == '\n':
		return []rune{'\n'}
	case r == '\t':
		return []rune("    ")
	case unicode.IsControl(r):
		return nil
	default:
		return []rune{r}
	}
}

// matches reports whether shown is what the text area displays for raw.
func (t rawText) matches(shown string) bool {
	return string(t.shown) == shown
}

// edit applies a text area change from before to after. Untouched raw runes
// keep their original bytes; runes whose shown form was partly edited are
// replaced by what the text area now holds. When before is not the shown form
// of raw, after is taken as is.
func (t rawText) edit(before, after string) rawText {
	if !t.matches(before) {
		return newRawText(after)
	}

	b := t.shown
	a := []rune(after)

	prefix := 0
	for prefix < len(b) && prefix < len(a) && b[prefix] == a[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(b)-prefix && suffix < len(a)-prefix &&
		b[len(b)-1-suffix] == a[len(a)-1-suffix] {
		suffix++
	}

	// Widen the changed region to whole spans.
	last := -1
	for i, s := range t.spans {
		if s.shownEnd > prefix {
			break
		}
		last = i
	}
	first := len(t.spans)
	for i := len(t.spans) - 1; i > last; i-- {
		if t.spans[i].shownStart < len(b)-suffix {
			break
		}
		first = i
	}

	keepPrefix, rawPrefix := 0, 0
	if last >= 0 {
		keepPrefix = t.spans[last].shownEnd
		rawPrefix = t.spans[last].rawEnd
	}
	keepSuffix, rawSuffix := 0, len(t.raw)
	if first < len(t.spans) {
		keepSuffix = len(b) - t.spans[first].shownStart
		rawSuffix = t.spans[first].rawStart
	}

	middle := string(a[keepPrefix : len(a)-keepSuffix])
	return newRawText(t.raw[:rawPrefix] + middle + t.raw[rawSuffix:])
}

// shownLine maps a 1-based line of the raw text to the line the text area
// shows it on. CRLF pairs and lone CRs take extra shown lines.
func (t rawText) shownLine(rawLine int) int {
	raw, shown := 1, 1
	for _, s := range t.spans {
		if raw >= rawLine {
			break
		}
		for _, r := range t.shown[s.shownStart:s.shownEnd] {
			if r == '\n' {
				shown++
			}
		}
		if strings.IndexByte(t.raw[s.rawStart:s.rawEnd], '\n') >= 0 {
			raw++
		}
	}
	return shown
}
