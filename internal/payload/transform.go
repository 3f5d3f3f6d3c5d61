package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Indent is the indentation used by Format.
const Indent = "  "

// Format pretty-prints a JSON document. Key order and number literals are
// kept as written.
func Format(value string) (string, error) {
	src := []byte(value)
	if !json.Valid(src) {
		return "", fmt.Errorf("format: %w", jsonSyntaxError(src))
	}
	var out bytes.Buffer
	if err := json.Indent(&out, src, "", Indent); err != nil {
		return "", fmt.Errorf("format: %w: %v", ErrMalformedJSON, err)
	}
	// json.Indent copies trailing whitespace through.
	return strings.TrimRight(out.String(), " \t\r\n"), nil
}

// Minify removes all insignificant whitespace from a JSON document.
func Minify(value string) (string, error) {
	src := []byte(value)
	if !json.Valid(src) {
		return "", fmt.Errorf("minify: %w", jsonSyntaxError(src))
	}
	var out bytes.Buffer
	if err := json.Compact(&out, src); err != nil {
		return "", fmt.Errorf("minify: %w: %v", ErrMalformedJSON, err)
	}
	return out.String(), nil
}

func jsonSyntaxError(src []byte) error {
	var v any
	if err := json.Unmarshal(src, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return ErrMalformedJSON
}

// Encode applies form URL-encoding to every name and value of an
// "&"-separated list of "name=value" pairs. Delimiters are kept, so
// "x test=x value" becomes "x+test=x+value".
func Encode(value string) string {
	if value == "" {
		return value
	}
	pairs := strings.Split(value, "&")
	for i, pair := range pairs {
		name, val, hasValue := strings.Cut(pair, "=")
		if !hasValue {
			pairs[i] = url.QueryEscape(name)
			continue
		}
		pairs[i] = url.QueryEscape(name) + "=" + url.QueryEscape(val)
	}
	return strings.Join(pairs, "&")
}

// Decode reverses Encode. A malformed escape anywhere in the input fails the
// whole decode.
func Decode(value string) (string, error) {
	if value == "" {
		return value, nil
	}
	pairs := strings.Split(value, "&")
	for i, pair := range pairs {
		name, val, hasValue := strings.Cut(pair, "=")
		decodedName, err := url.QueryUnescape(name)
		if err != nil {
			return "", fmt.Errorf("decode pair %d: %w: %v", i, ErrMalformedPercentEncoding, err)
		}
		if !hasValue {
			pairs[i] = decodedName
			continue
		}
		decodedValue, err := url.QueryUnescape(val)
		if err != nil {
			return "", fmt.Errorf("decode pair %d: %w: %v", i, ErrMalformedPercentEncoding, err)
		}
		pairs[i] = decodedName + "=" + decodedValue
	}
	return strings.Join(pairs, "&"), nil
}
