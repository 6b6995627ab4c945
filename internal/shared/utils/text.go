package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CleanText collapses runs of whitespace (including newlines and tabs that
// scraped HTML is full of) into single spaces and trims the ends.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// ParseCoordinate parses a latitude/longitude string from the tour API.
// Returns nil for empty or malformed values so bad records degrade to
// "no coordinates" instead of failing the whole item.
func ParseCoordinate(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// SanitizeEmail normalizes an email for lookups. Registration stores the
// address as submitted; this is for comparison only.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StripHTMLTags removes markup from overview text returned by the tour API,
// which embeds <br> and anchor tags inside plain-text fields.
func StripHTMLTags(s string) string {
	s = regexp.MustCompile(`(?i)<br\s*/?>`).ReplaceAllString(s, "\n")
	s = regexp.MustCompile(`<[^>]*>`).ReplaceAllString(s, "")
	return CleanText(s)
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
