package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForTitle(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":        "hello-world",
		"  Go   Rocks  ":       "go-rocks",
		"Already-hyphenated":   "already-hyphenated",
		"Mixed --- separators": "mixed-separators",
		"100% Pure Go":         "100-pure-go",
		"---":                  "",
		"Tabs\tand\nnewlines":  "tabs-and-newlines",
		"CAPS AND 123":         "caps-and-123",
	}
	for in, want := range cases {
		assert.Equal(t, want, ForTitle(in), "input %q", in)
	}
}

func TestForTitleShape(t *testing.T) {
	inputs := []string{
		"A Post: With (Punctuation)?!",
		"  --leading and trailing--  ",
		"unicode é títle",
		"one",
	}
	for _, in := range inputs {
		s := ForTitle(in)
		assert.False(t, strings.HasPrefix(s, "-"), "leading hyphen in %q", s)
		assert.False(t, strings.HasSuffix(s, "-"), "trailing hyphen in %q", s)
		assert.NotContains(t, s, "--")
		for _, r := range s {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "character %q in slug %q", r, s)
		}
	}
}

func TestForTag(t *testing.T) {
	assert.Equal(t, "machine-learning", ForTag("Machine Learning"))
	assert.Equal(t, "tech", ForTag("Tech"))
	assert.Equal(t, "tech", ForTag(" tech "))
	assert.Equal(t, "web-dev", ForTag("Web   Dev"))
}
