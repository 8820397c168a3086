package fuzzdex

import (
	"math"

	"github.com/blaa/fuzzdex/internal/cache"
	"github.com/blaa/fuzzdex/internal/heatmap"
	"github.com/blaa/fuzzdex/internal/text"
)

// trigramMapPresize is the initial bucket count for the trigram map,
// chosen so a typical dictionary never triggers a Go map resize mid-build.
const trigramMapPresize = 32768

// defaultCacheCapacity is used by Finish, per the documented 2000 default.
const defaultCacheCapacity = 2000

// positionsInitialCap is the starting capacity for a fresh TrigramEntry's
// Positions slice. Most trigrams accumulate only a handful of occurrences.
const positionsInitialCap = 4

// Indexer is the build-phase, single-writer structure: create it, call
// AddPhrase any number of times, then call Finish or FinishWithCache to
// freeze it into a queryable Index. It is not safe for concurrent use by
// multiple goroutines; callers must serialize AddPhrase calls themselves.
//
// The BUILDING → READY transition is destructive: Finish/FinishWithCache
// consume the receiver by setting frozen and nilling its maps, so any
// further AddPhrase call observes frozen and fails with WrongState rather
// than silently mutating a structure the returned Index no longer owns.
type Indexer struct {
	frozen   bool
	trigrams map[string]*TrigramEntry
	phrases  map[PhraseID]*PhraseEntry
}

// New creates an empty Indexer.
func New() *Indexer {
	return &Indexer{
		trigrams: make(map[string]*TrigramEntry, trigramMapPresize),
		phrases:  make(map[PhraseID]*PhraseEntry, 256),
	}
}

// AddPhrase tokenizes phrase and indexes every trigram of every token under
// id. constraints may be nil; it is then stored as an empty set. Fails with
// a KindDuplicateID Error if id is already present, or KindWrongState if
// the Indexer has already been frozen by Finish/FinishWithCache.
func (ix *Indexer) AddPhrase(phrase string, id PhraseID, constraints map[ConstraintID]struct{}) error {
	if ix.frozen {
		return newWrongStateError("AddPhrase")
	}
	if _, exists := ix.phrases[id]; exists {
		return newDuplicateIDError("AddPhrase", id)
	}

	if constraints == nil {
		constraints = make(map[ConstraintID]struct{})
	}

	tokens := text.Tokenize(phrase, 1)
	entry := &PhraseEntry{
		ID:          id,
		Origin:      phrase,
		Tokens:      tokens,
		Constraints: constraints,
	}
	ix.phrases[id] = entry

	for tokenIndex, token := range tokens {
		for _, trigram := range text.Trigramize(token) {
			te, ok := ix.trigrams[trigram]
			if !ok {
				te = &TrigramEntry{Positions: make([]Position, 0, positionsInitialCap)}
				ix.trigrams[trigram] = te
			}
			te.Positions = append(te.Positions, Position{PhraseID: id, TokenIndex: uint32(tokenIndex)})
		}
	}

	return nil
}

// FinishWithCache freezes the Indexer, scores every trigram, and returns an
// Index backed by a heatmap cache of the given capacity. cacheSize must be
// > 0; per §4.2 only, a zero-capacity cache is a configuration error, not a
// degenerate-but-legal one.
func (ix *Indexer) FinishWithCache(cacheSize int) (*Index, error) {
	if ix.frozen {
		return nil, newWrongStateError("FinishWithCache")
	}
	if cacheSize <= 0 {
		return nil, newWrongStateError("FinishWithCache")
	}

	scoreTrigrams(ix.trigrams)

	idx := &Index{
		trigrams: ix.trigrams,
		phrases:  ix.phrases,
		cache:    cache.New[*heatmap.Heatmap](cacheSize),
	}

	ix.frozen = true
	ix.trigrams = nil
	ix.phrases = nil

	return idx, nil
}

// Finish freezes the Indexer with the documented default cache capacity of
// 2000 entries (empirically under 1% misses on realistic workloads).
func (ix *Indexer) Finish() (*Index, error) {
	return ix.FinishWithCache(defaultCacheCapacity)
}

// scoreTrigrams computes score(t) = 0.5 + 0.5*tanh(5*(avg-c_t-1)/max) for
// every trigram, where c_t is its occurrence count, avg is the mean count
// over all trigrams, and max is the maximum count. An empty trigram map is
// left untouched, matching the documented "empty index skips scoring".
func scoreTrigrams(trigrams map[string]*TrigramEntry) {
	n := len(trigrams)
	if n == 0 {
		return
	}

	var total, max int
	for _, te := range trigrams {
		c := len(te.Positions)
		total += c
		if c > max {
			max = c
		}
	}
	if max == 0 {
		max = 1
	}
	avg := float64(total) / float64(n)

	for _, te := range trigrams {
		c := len(te.Positions)
		te.Score = float32(0.5 + 0.5*math.Tanh(5*(avg-float64(c)-1)/float64(max)))
	}
}
