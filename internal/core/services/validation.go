package services

import "strings"

// isBlank reports whether the string is empty or whitespace-only.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
