package stringsx

import "strings"

// Clip returns at most max runes of s.
// If max <= 0, an empty string is returned.
func Clip(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// Normalize trims spaces and converts a string to lower case.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsEmpty reports whether s is empty after trimming spaces.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FirstLine returns the first non-blank line of s, trimmed.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if !IsEmpty(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// Preview renders a one-line summary of s for list views.
// Text longer than max runes is clipped and suffixed with "...".
func Preview(s string, max int) string {
	line := FirstLine(s)
	if line == "" {
		return "(empty)"
	}
	clipped := Clip(line, max)
	if clipped != line {
		return clipped + "..."
	}
	return clipped
}
