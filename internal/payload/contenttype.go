package payload

import "strings"

const (
	formEncodedMarker = "x-www-form-urlencoded"
	jsonMarker        = "/json"
)

// Flags are derived from a content-type string.
type Flags struct {
	IsFormEncoded bool
	IsJSON        bool
}

// Classify derives Flags from a content-type using plain substring matching.
// No MIME parsing or case folding is applied, so "Application/JSON" is not JSON
// while a parameter value containing "/json" is.
func Classify(contentType string) Flags {
	return Flags{
		IsFormEncoded: IsFormEncoded(contentType),
		IsJSON:        IsJSON(contentType),
	}
}

// IsFormEncoded reports whether contentType names a form URL-encoded body.
func IsFormEncoded(contentType string) bool {
	return contentType != "" && strings.Contains(contentType, formEncodedMarker)
}

// IsJSON reports whether contentType names a JSON body.
func IsJSON(contentType string) bool {
	return contentType != "" && strings.Contains(contentType, jsonMarker)
}

// EditorMode strips the parameter segment from a content-type so it can be
// used as a syntax mode identifier.
func EditorMode(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i != -1 {
		return contentType[:i]
	}
	return contentType
}
