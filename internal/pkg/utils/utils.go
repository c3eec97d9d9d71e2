package utils

import (
	"fmt"
	"strings"
)

// HasAnySuffix reports whether s ends with any of the suffixes.
// Example: HasAnySuffix("https://x/logo.png", ".png", ".svg") -> true
func HasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}

	return false
}

// ContainsAny reports whether s contains any of the substrings.
func ContainsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}

// FormatMegabytes formats a byte count as megabytes with two decimals.
// Example: 31457280 -> "30.00MB"
func FormatMegabytes(size int64) string {
	return fmt.Sprintf("%.2fMB", float64(size)/1024/1024)
}
