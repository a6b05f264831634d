// Package slug derives URL-safe identifiers from titles and tag names.
package slug

import (
	"strings"
	"unicode"
)

// ForTitle turns a post title into its slug: lowercase, characters outside
// [a-z0-9] dropped, whitespace runs collapsed to single hyphens, no
// leading/trailing/duplicate hyphens.
func ForTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-':
			b.WriteRune('-')
		}
	}
	s := b.String()
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// ForTag turns a tag name into its slug: lowercase with whitespace runs
// collapsed to single hyphens.
func ForTag(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
