// Package privacy removes user-marked private spans from content before it
// is sent to the memory backend.
package privacy

import (
	"regexp"
	"strings"
)

// Markers delimiting a private span inside user-supplied content.
const (
	OpenMarker  = "<private>"
	CloseMarker = "</private>"
)

// spanPattern matches one complete private span, non-greedy so adjacent
// spans are removed independently. (?s) lets spans cross line breaks.
var spanPattern = regexp.MustCompile(`(?s)` + OpenMarker + `.*?` + CloseMarker)

// Strip removes every non-overlapping private span, markers included, and
// trims leading and trailing whitespace from what remains.
//
// Nesting has no special semantics: the first close marker ends the span.
// An open marker with no matching close marker is not a span and is left
// verbatim in the output.
func Strip(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(spanPattern.ReplaceAllString(text, ""))
}

// IsFullyPrivate reports whether stripping leaves nothing behind, meaning
// the content must not be stored at all.
func IsFullyPrivate(text string) bool {
	return Strip(text) == ""
}
