// Package sanitize normalizes text scraped from the results page.
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var dayOffsetSuffix = regexp.MustCompile(`\s*\+\d+\s*$`)

var spaceReplacer = strings.NewReplacer(
	"\u202f", " ", // narrow no-break space
	"\u00a0", " ", // no-break space
)

// Text applies NFKC normalization, turns no-break spaces into plain spaces
// and collapses every whitespace run into a single space.
func Text(value string) string {
	normalized := norm.NFKC.String(value)
	normalized = spaceReplacer.Replace(normalized)

	return strings.Join(strings.Fields(normalized), " ")
}

// ArrivalTime sanitizes value and strips a trailing day offset such as "+1".
// Example: "10:45 PM +1" -> "10:45 PM"
func ArrivalTime(value string) string {
	return dayOffsetSuffix.ReplaceAllString(Text(value), "")
}

// Optional sanitizes a possibly missing value, a missing one yields "".
func Optional(value *string, fn func(string) string) string {
	if value == nil {
		return ""
	}

	return fn(*value)
}
