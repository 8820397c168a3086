// Package heatmap holds the per-query intermediate structure produced by
// scanning a must-token's trigrams against the frozen trigram index. It is
// pure data: building and sharing it is the caller's (the Index's)
// responsibility.
package heatmap

// PhraseHeatmap accumulates, for one candidate phrase, the trigram score
// contributed to each of its tokens by a single must-token lookup.
type PhraseHeatmap struct {
	// Tokens maps token index within the phrase to accumulated score.
	Tokens map[uint32]float32
	// TotalScore is the sum of all entries in Tokens.
	TotalScore float32
}

// Heatmap maps candidate phrase IDs to their PhraseHeatmap, plus the
// maximum TotalScore seen across all of them. Immutable once returned by
// its builder; safe to share across concurrent readers.
type Heatmap struct {
	Phrases  map[uint64]*PhraseHeatmap
	MaxScore float32
}

// New returns an empty Heatmap ready for accumulation.
func New() *Heatmap {
	return &Heatmap{
		Phrases: make(map[uint64]*PhraseHeatmap, 8),
	}
}

// Add records that trigram score contributed to phraseID's tokenIndex,
// updating the phrase's total and the heatmap's running max.
func (h *Heatmap) Add(phraseID uint64, tokenIndex uint32, score float32) {
	ph, ok := h.Phrases[phraseID]
	if !ok {
		ph = &PhraseHeatmap{Tokens: make(map[uint32]float32, 4)}
		h.Phrases[phraseID] = ph
	}
	ph.Tokens[tokenIndex] += score
	ph.TotalScore += score
	if ph.TotalScore > h.MaxScore {
		h.MaxScore = ph.TotalScore
	}
}
