package fuzzdex

import "github.com/blaa/fuzzdex/internal/text"

// Tokenize splits phrase the same way AddPhrase does internally, so a
// caller can normalize a query identically to the index. minLength
// defaults to 2 in the external contract (AddPhrase itself always tokenizes
// with minLength=1, keeping single-character tokens indexable).
func Tokenize(phrase string, minLength int) []string {
	return text.Tokenize(phrase, minLength)
}

// Trigramize extracts the trigrams (including pseudo-trigrams and
// augmentations for short tokens) that the index would produce for token.
func Trigramize(token string) []string {
	return text.Trigramize(token)
}

// Distance computes the bounded Levenshtein edit distance between a and b
// over Unicode grapheme clusters, truncating each side to 500 graphemes.
func Distance(a, b string) int {
	return text.Distance(a, b)
}
