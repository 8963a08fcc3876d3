// Package scripture parses biblical reference strings as returned by the
// question generator into separate book and chapter/verse parts.
package scripture

import (
	"regexp"
	"strings"
)

// referencePattern matches "<book> <chapter>[:verses]" where the book may
// carry a numeric prefix ("1 Corinthians", "2 Kings") and span several words
// ("Song of Solomon").
var referencePattern = regexp.MustCompile(`^([1-3]?\s?[A-Za-z]+(?:\s[A-Za-z]+)*)\s+(\d+(?::[\d,\-\s]+)?)$`)

// Reference is a parsed biblical reference.
type Reference struct {
	Book         string
	ChapterVerse string
}

// Parse splits a reference like "1 Corinthians 13:4-7" into its book
// ("1 Corinthians") and chapter/verse ("13:4-7") parts. The second return is
// false when the string does not look like a reference; callers are expected
// to keep the raw string in that case rather than fail.
func Parse(raw string) (Reference, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Reference{}, false
	}

	m := referencePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Reference{}, false
	}

	return Reference{
		Book:         strings.TrimSpace(m[1]),
		ChapterVerse: strings.TrimSpace(m[2]),
	}, true
}
