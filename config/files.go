package config

import (
	"strings"
	"unicode"
)

// CleanFileName drops characters file names may not contain on this
// platform and control characters. Leading dots and spaces are removed so
// result is never hidden or relative.
func CleanFileName(in string) string {
	out := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(forbiddenInName, r) {
			return -1
		}
		return r
	}, in)
	out = strings.TrimRight(strings.TrimLeft(out, ". "), " ")
	if len(out) == 0 {
		out = "_unnamed_"
	}
	return out
}
