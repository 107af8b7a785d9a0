// Package utils contains small helper functions used across the project.
//
// These are generic helpers that don't belong to a specific domain.
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseLimit reads a positive integer limit from a query value.
// Empty, malformed or non-positive values yield def; max caps the result
// when it is positive.
func ParseLimit(raw string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		n = def
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}

// FormatDuration renders seconds as mm:ss, wrapping at one hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	seconds %= 3600
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// FirstNonEmpty returns the first non-blank value, or "".
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
