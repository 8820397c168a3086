// Package text implements the Unicode-aware tokenization, trigram
// extraction, and bounded edit-distance primitives FuzzDex builds its index
// and queries on.
package text

import (
	"regexp"
	"strings"
)

// separator matches the runs of punctuation/whitespace that split a phrase
// into tokens. Kept as a package-level compiled regexp, following the same
// compile-once convention the rest of the corpus uses for lookup regexes.
var separator = regexp.MustCompile(`[- \t\n'’` + "`" + `„"_.,;:=]+`)

// Tokenize splits phrase on separator, trims, lowercases, and drops any
// piece shorter than minLength bytes. Order is preserved; duplicates are
// retained.
func Tokenize(phrase string, minLength int) []string {
	pieces := separator.Split(phrase, -1)
	tokens := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.ToLower(strings.TrimSpace(p))
		if len(p) >= minLength {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
