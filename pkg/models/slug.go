package models

import (
	"crypto/rand"
	"strings"
)

// DefaultTitle is the title given to newly created workflows.
const DefaultTitle = "Untitled workflow"

// DeriveSlug maps a title to its URL slug by replacing every character outside
// [a-zA-Z0-9] with "-". The mapping is character-for-character, so
// "My Guide!" derives to "My-Guide-". Deriving from an already-derived slug
// yields the same slug.
func DeriveSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}

	return b.String()
}

const uidLength = 12

const uidAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewUID generates the random identifier that forms the stable part of a
// workflow's public locator. It never contains "-" so that ParseLocator can
// recover it as the trailing segment.
func NewUID() string {
	buf := make([]byte, uidLength)
	if _, err := rand.Read(buf); err != nil {
		panic("models: reading random bytes: " + err.Error())
	}

	for i, b := range buf {
		buf[i] = uidAlphabet[int(b)%len(uidAlphabet)]
	}

	return string(buf)
}

// ParseLocator extracts the uid from a public locator of the form
// "<slug>-<uid>". The slug part is cosmetic and may have drifted; lookups must
// key on the uid alone. A locator without "-" is treated as a bare uid.
func ParseLocator(locator string) string {
	if i := strings.LastIndexByte(locator, '-'); i >= 0 {
		return locator[i+1:]
	}

	return locator
}
