package compiler

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeTag folds a tag to its comparison form: NFC, case folded,
// surrounding space trimmed. "React " and "react" normalize the same.
func NormalizeTag(tag string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(tag)))
}

// NormalizeTags normalizes every tag and drops later duplicates.
// Empty tags are kept so validation can report them.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n != "" && seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
