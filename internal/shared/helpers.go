// Package shared provides common utility functions used across multiple
// packages in the arxml-inspect codebase.
package shared

import (
	"strings"
	"unicode/utf8"
)

// NormalizeTag upper-cases an XML element name and trims surrounding
// whitespace so tag tables can be matched case-insensitively.
func NormalizeTag(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// Megabytes converts a byte count to MiB for human-readable messages.
func Megabytes(size int64) float64 {
	return float64(size) / 1024 / 1024
}

// Truncate shortens value to at most max runes, marking the cut with an
// ellipsis. Line breaks are collapsed to single spaces.
func Truncate(value string, max int) string {
	value = strings.Join(strings.Fields(value), " ")
	if max <= 0 || utf8.RuneCountInString(value) <= max {
		return value
	}
	runes := []rune(value)
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
