package payload

import "errors"

var (
	// ErrMalformedJSON is returned when a JSON transform cannot parse its input.
	ErrMalformedJSON = errors.New("malformed JSON")

	// ErrMalformedPercentEncoding is returned when Decode meets an invalid escape.
	ErrMalformedPercentEncoding = errors.New("malformed percent encoding")
)
