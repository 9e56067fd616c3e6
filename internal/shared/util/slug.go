package util

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Slugify lowercases the input and collapses non-alphanumeric runs into
// single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// UniqueSlug appends a short random suffix so slugs stay unique without a
// database round trip.
func UniqueSlug(title string) string {
	base := Slugify(title)
	if base == "" {
		base = "resume"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return base + "-" + suffix
}
