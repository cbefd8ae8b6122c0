// Package preview generates the social-preview image descriptor for a
// workflow document and serves the matching rasterization contract.
package preview

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// BasePath is the fixed path of the rasterization endpoint the descriptor
// points at.
const BasePath = "/og"

// Descriptor carries the five inputs of the preview image. Encoding the same
// descriptor twice yields byte-identical output, so downstream caches can key
// on the URL.
type Descriptor struct {
	Title        string
	UpdatedAt    string
	Steps        string
	AuthorName   string
	AuthorAvatar string
}

// NewDescriptor builds a descriptor from document state.
func NewDescriptor(title string, updatedAt time.Time, stepCount int, authorName, authorAvatar string) Descriptor {
	return Descriptor{
		Title:        title,
		UpdatedAt:    FormatUpdatedAt(updatedAt),
		Steps:        strconv.Itoa(stepCount),
		AuthorName:   authorName,
		AuthorAvatar: authorAvatar,
	}
}

// Encode returns the canonical query-parameter encoding. Parameters appear in
// a fixed order with each value percent-encoded, never sorted, so the result
// is stable for stable inputs.
func (d Descriptor) Encode() string {
	pairs := []struct {
		key   string
		value string
	}{
		{"title", d.Title},
		{"updatedAt", d.UpdatedAt},
		{"steps", d.Steps},
		{"authorName", d.AuthorName},
		{"authorAvatar", d.AuthorAvatar},
	}

	var b strings.Builder

	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}

	return b.String()
}

// URL returns the full descriptor URL under the given origin,
// e.g. "https://stepflow.example/og?title=...".
func (d Descriptor) URL(origin string) string {
	return strings.TrimSuffix(origin, "/") + BasePath + "?" + d.Encode()
}

// FormatUpdatedAt renders the timestamp the way the preview caption displays
// it, e.g. "07 March 2026".
func FormatUpdatedAt(t time.Time) string {
	return t.Format("02 January 2006")
}
