package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        Flags
	}{
		{"empty", "", Flags{}},
		{"json", "application/json", Flags{IsJSON: true}},
		{"json with charset", "application/json; charset=utf-8", Flags{IsJSON: true}},
		{"text json", "text/json", Flags{IsJSON: true}},
		{"vendor json suffix is not matched", "application/vnd.api+json", Flags{}},
		{"form", "application/x-www-form-urlencoded", Flags{IsFormEncoded: true}},
		{"form with charset", "application/x-www-form-urlencoded; charset=utf-8", Flags{IsFormEncoded: true}},
		{"xml", "application/xml", Flags{}},
		{"no case folding", "Application/JSON", Flags{}},
		{"parameter false positive kept", "text/plain; profile=x/json", Flags{IsJSON: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.contentType))
		})
	}
}

func TestIsFormEncoded(t *testing.T) {
	t.Run("true iff marker present", func(t *testing.T) {
		for _, ct := range []string{"x-www-form-urlencoded", "foo x-www-form-urlencoded bar"} {
			assert.True(t, IsFormEncoded(ct), ct)
		}
		for _, ct := range []string{"", "multipart/form-data", "x-www-form"} {
			assert.False(t, IsFormEncoded(ct), ct)
		}
	})
}

func TestIsJSON(t *testing.T) {
	t.Run("true iff marker present", func(t *testing.T) {
		for _, ct := range []string{"/json", "application/json", "a/jsonx"} {
			assert.True(t, IsJSON(ct), ct)
		}
		for _, ct := range []string{"", "json", "application/xml"} {
			assert.False(t, IsJSON(ct), ct)
		}
	})
}

func TestEditorMode(t *testing.T) {
	t.Run("strips parameters", func(t *testing.T) {
		assert.Equal(t, "application/xml", EditorMode(`application/xml; charset="utf-8"`))
	})

	t.Run("keeps plain content type", func(t *testing.T) {
		assert.Equal(t, "application/json", EditorMode("application/json"))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		assert.Equal(t, "", EditorMode(""))
	})

	t.Run("leading separator yields empty mode", func(t *testing.T) {
		assert.Equal(t, "", EditorMode(";charset=utf-8"))
	})
}
