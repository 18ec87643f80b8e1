package utils

import (
	"html"
	"strings"
	"unicode"
)

// SanitizeString trims whitespace and escapes HTML entities.
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// SanitizeIdentifier normalizes a signup identifier: lowercased, trimmed,
// control characters stripped. Applied before classification. Login input
// goes through SanitizeUserInput instead, since usernames are case-sensitive.
func SanitizeIdentifier(input string) string {
	return strings.ToLower(SanitizeUserInput(input))
}

// SanitizeUserInput trims whitespace and strips control characters while
// preserving case.
func SanitizeUserInput(input string) string {
	input = strings.TrimSpace(input)

	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// SanitizeText sanitizes multi-line text such as captions and comments,
// keeping newlines and tabs.
func SanitizeText(input string) string {
	escaped := html.EscapeString(strings.TrimSpace(input))

	var result strings.Builder
	for _, r := range escaped {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
