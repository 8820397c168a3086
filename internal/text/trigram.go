package text

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// letterReplacements covers decompositions NFD misses entirely. Extend this
// table freely; documented behavior only depends on these two entries.
var letterReplacements = [][2]string{
	{"ł", "l"},
	{"ß", "ss"},
}

// graphemes decomposes s under NFD, strips non-spacing marks (combining
// accents), applies letterReplacements, and segments the result into
// Unicode extended grapheme clusters.
func graphemes(s string) []string {
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	normalized := b.String()

	for _, repl := range letterReplacements {
		normalized = strings.ReplaceAll(normalized, repl[0], repl[1])
	}

	out := make([]string, 0, len(normalized))
	g := uniseg.NewGraphemes(normalized)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Trigramize extracts trigrams from a single token: NFD-normalize and strip
// accents, segment into graphemes, emit sliding trigrams, and for very short
// tokens emit padded pseudo-trigrams (1-2 graphemes) or extra augmentation
// trigrams (4-5 graphemes) to keep recall under single-character errors.
func Trigramize(token string) []string {
	g := graphemes(token)
	n := len(g)

	switch n {
	case 0:
		return nil
	case 1:
		return []string{g[0] + "  "}
	case 2:
		return []string{g[0] + g[1] + " "}
	}

	trigrams := make([]string, 0, n)
	for i := 0; i <= n-3; i++ {
		trigrams = append(trigrams, g[i]+g[i+1]+g[i+2])
	}

	if n == 4 || n == 5 {
		trigrams = append(trigrams, g[0]+g[1]+g[n-1])
		trigrams = append(trigrams, g[0]+g[n-2]+g[n-1])
	}

	return trigrams
}
