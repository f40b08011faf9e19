// Package slug derives URL-safe catalog keys from titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	pattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Make lowercases s, strips diacritics and joins the remaining words with
// single dashes. "Data Analysis & Excel (Beginner)" becomes
// "data-analysis-excel-beginner".
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(folded), "-"), "-")
}

// Valid reports whether s is already in slug form.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
