// Package text holds the tokenization primitives shared by the macro
// pre-processor and the two assembly passes. Every function here returns
// a fresh string; none retain a reference into the caller's buffer.
package text

import "strings"

// isASCIISpace restricts trimming to the ASCII whitespace set the
// source language defines, deliberately narrower than unicode.IsSpace.
func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

// Trim removes leading and trailing ASCII whitespace.
func Trim(s string) string {
	return strings.TrimFunc(s, isASCIISpace)
}

// TrimLeft removes leading ASCII whitespace only.
func TrimLeft(s string) string {
	return strings.TrimLeftFunc(s, isASCIISpace)
}

// IsBlankOrComment reports whether a raw source line should be
// skipped outright: empty after trimming, or beginning with ';'
// once leading whitespace is stripped.
func IsBlankOrComment(line string) bool {
	trimmed := TrimLeft(line)
	if trimmed == "" {
		return true
	}
	return trimmed[0] == ';'
}

// FirstWord returns the span of s up to (not including) the first run
// of ASCII whitespace, after skipping any leading whitespace. It
// returns "" if s holds only whitespace.
func FirstWord(s string) string {
	s = TrimLeft(s)
	for i, r := range s {
		if isASCIISpace(r) {
			return s[:i]
		}
	}
	return s
}

// Rest returns the remainder of s after its first word, with leading
// whitespace of that remainder stripped. It returns "" if s has at
// most one word.
func Rest(s string) string {
	s = TrimLeft(s)
	for i, r := range s {
		if isASCIISpace(r) {
			return TrimLeft(s[i:])
		}
	}
	return ""
}

// SplitFields splits s on runs of ASCII whitespace, discarding empty
// fields.
func SplitFields(s string) []string {
	return strings.FieldsFunc(s, isASCIISpace)
}
