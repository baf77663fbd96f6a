// Package matcher compares guesses with accepted translations ignoring
// accents and case.
package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes s, drops combining marks and lowercases the result.
func Normalize(s string) string {
	// transform.Chain keeps state, build a fresh one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	// Neither transformer can fail on a complete string
	out, _, _ := transform.String(t, s)
	return strings.ToLower(out)
}

// Matches reports whether raw equals any accepted translation after
// normalization of both sides.
func Matches(raw string, accepted []string) bool {
	guess := Normalize(raw)
	matched := false
	for _, candidate := range accepted {
		if Normalize(candidate) == guess {
			matched = true
		}
	}
	return matched
}
