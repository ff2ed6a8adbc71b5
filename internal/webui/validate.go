package webui

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Input limits, counted in characters. Inputs that fail validation
// short-circuit the operation they would have triggered; they are never
// "fixed up" and retried.
const (
	MaxQueryLen = 100
	MaxCodeLen  = 50
)

// codePattern accepts alphanumeric codes with limited punctuation.
var codePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidCode reports whether a string is usable as an error code. A stored
// history entry with an invalid code must not open a detail view, so this
// is checked on every inbound code, not just form input.
func ValidCode(code string) bool {
	return code != "" && len(code) <= MaxCodeLen && codePattern.MatchString(code)
}

// ValidQuery reports whether a search query is acceptable.
func ValidQuery(query string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(query))
	return n > 0 && n <= MaxQueryLen
}
