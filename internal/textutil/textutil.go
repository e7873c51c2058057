package textutil

import (
	"regexp"
	"strings"
)

// tagPattern matches the shortest run between '<' and '>' on a single line.
// It is a textual strip: literal "<...>" sequences in content are removed too.
var tagPattern = regexp.MustCompile(`<.+?>`)

// StripTags removes angle-bracket markup from a serialized string.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
