// Package payload holds the content-type classification and text transforms
// behind the raw payload editor.
//
// Everything here is pure: functions take the current body text and return
// the transformed text or an error wrapping ErrMalformedJSON or
// ErrMalformedPercentEncoding. Callers decide whether to store the result.
package payload
