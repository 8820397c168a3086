package fuzzdex

import (
	"sort"
	"unicode/utf8"

	"github.com/blaa/fuzzdex/internal/cache"
	"github.com/blaa/fuzzdex/internal/heatmap"
	"github.com/blaa/fuzzdex/internal/text"
)

// shouldTrigramLimit bounds how many trigrams of a should-token contribute
// to ranking, per §4.5.1. A dead historical revision truncated the full
// per-token trigram list to 3 elements and then re-trigramized the token
// anyway, which made the truncation a no-op; the behavior actually in
// effect — and the one implemented here — truncates the real iteration set
// (sliding trigrams plus short-token augmentations) to its first 4 entries.
const shouldTrigramLimit = 4

// Index is the frozen, read-only result of Indexer.Finish. Search is safe
// to call from any number of goroutines concurrently; the only mutable
// state is the heatmap cache, which guards its own bookkeeping internally.
type Index struct {
	trigrams map[string]*TrigramEntry
	phrases  map[PhraseID]*PhraseEntry
	cache    *cache.LRU[*heatmap.Heatmap]
}

// CacheStats reports the heatmap cache's lifetime counters and live size.
func (idx *Index) CacheStats() cache.Stats {
	return idx.cache.Stats()
}

// Search runs a query against the frozen index, returning results ordered
// per §4.5.2: ascending by (distance, score desc, should_score desc,
// origin length, origin), truncated to query.limit if set.
func (idx *Index) Search(q Query) []Result {
	if q.must == "" {
		return []Result{}
	}

	hm := idx.createHeatmap(q.must)
	if len(hm.Phrases) == 0 {
		return []Result{}
	}

	should := idx.shouldScores(hm, q.should, q.constraint)
	return idx.filteredResults(q, hm, should)
}

// createHeatmap returns the shared heatmap for mustToken, computing and
// caching it on miss. The cache key is the caller's token exactly as
// supplied — it is not re-normalized.
func (idx *Index) createHeatmap(mustToken string) *heatmap.Heatmap {
	if hm, ok := idx.cache.Get(mustToken); ok {
		return hm
	}

	hm := heatmap.New()
	for _, trigram := range text.Trigramize(mustToken) {
		entry, ok := idx.trigrams[trigram]
		if !ok {
			continue
		}
		for _, pos := range entry.Positions {
			hm.Add(pos.PhraseID, pos.TokenIndex, entry.Score)
		}
	}

	idx.cache.Insert(mustToken, hm)
	return hm
}

// shouldScores computes, for every phrase already present in hm, its total
// contribution from should-token trigrams, respecting constraint.
func (idx *Index) shouldScores(hm *heatmap.Heatmap, should []string, constraint *ConstraintID) map[PhraseID]float32 {
	scores := make(map[PhraseID]float32, len(hm.Phrases))

	for _, token := range should {
		trigrams := text.Trigramize(token)
		if len(trigrams) > shouldTrigramLimit {
			trigrams = trigrams[:shouldTrigramLimit]
		}

		for _, trigram := range trigrams {
			entry, ok := idx.trigrams[trigram]
			if !ok {
				continue
			}
			for _, pos := range entry.Positions {
				if constraint != nil {
					phrase := idx.phrases[pos.PhraseID]
					if _, has := phrase.Constraints[*constraint]; !has {
						continue
					}
				}
				if _, candidate := hm.Phrases[pos.PhraseID]; !candidate {
					continue
				}
				scores[pos.PhraseID] += entry.Score
			}
		}
	}

	return scores
}

// candidate is a phrase awaiting ranking, carrying the combined sort key
// inputs computed once up front.
type candidate struct {
	id          PhraseID
	combined    float32
	originLen   int
	shouldScore float32
}

// filteredResults implements §4.5.2: sort candidates by the combined key,
// then walk them applying the constraint filter, the cutoff break, token
// selection, and the limit break, before the final deterministic sort.
func (idx *Index) filteredResults(q Query, hm *heatmap.Heatmap, should map[PhraseID]float32) []Result {
	candidates := make([]candidate, 0, len(hm.Phrases))
	for id, ph := range hm.Phrases {
		shouldScore := should[id]
		candidates = append(candidates, candidate{
			id:          id,
			combined:    ph.TotalScore + shouldScore,
			originLen:   utf8.RuneCountInString(idx.phrases[id].Origin),
			shouldScore: shouldScore,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.combined != b.combined {
			return a.combined > b.combined
		}
		return a.originLen < b.originLen
	})

	maxDistance := q.effectiveMaxDistance()
	cutoff := q.scanCutoff

	var limit int
	hasLimit := q.limit != nil
	if hasLimit {
		limit = *q.limit
	}

	bestDistance := -1 // -1 means "no result yet"; compared as +inf
	results := make([]Result, 0, len(candidates))

	for _, c := range candidates {
		phrase := idx.phrases[c.id]
		if q.constraint != nil {
			if _, has := phrase.Constraints[*q.constraint]; !has {
				continue
			}
		}

		if bestDistance == 0 && hm.Phrases[c.id].TotalScore < cutoff*hm.MaxScore {
			break
		}

		token, tokenIndex, distance, found := idx.bestToken(hm.Phrases[c.id], phrase, q.must, maxDistance)
		if !found {
			continue
		}

		score := hm.Phrases[c.id].Tokens[tokenIndex]
		results = append(results, Result{
			Origin:      phrase.Origin,
			Index:       phrase.ID,
			Token:       token,
			Distance:    distance,
			Score:       score,
			ShouldScore: c.shouldScore,
		})

		if bestDistance == -1 || distance < bestDistance {
			bestDistance = distance
		}

		if bestDistance == 0 && hasLimit && len(results) >= limit {
			break
		}
	}

	sortResultsFinal(results)

	if hasLimit && len(results) > limit {
		results = results[:limit]
	}

	return results
}

// tokenCandidate is one phrase token under consideration during §4.5.2 step 3.
type tokenCandidate struct {
	index int
	token string
	score float32
}

// bestToken walks a phrase's tokens ordered by (token_score DESC,
// token_length ASC), returning the first whose edit distance to must is
// within maxDistance.
func (idx *Index) bestToken(ph *heatmap.PhraseHeatmap, phrase *PhraseEntry, must string, maxDistance int) (string, uint32, int, bool) {
	candidates := make([]tokenCandidate, 0, len(ph.Tokens))
	for tokenIndex, score := range ph.Tokens {
		token := phrase.Tokens[tokenIndex]
		candidates = append(candidates, tokenCandidate{index: int(tokenIndex), token: token, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		return utf8.RuneCountInString(a.token) < utf8.RuneCountInString(b.token)
	})

	for _, c := range candidates {
		d := text.Distance(c.token, must)
		if d <= maxDistance {
			return c.token, uint32(c.index), d, true
		}
	}
	return "", 0, 0, false
}

// sortResultsFinal applies the deterministic final ordering of §4.5.2:
// (distance ASC, score DESC, should_score DESC, origin.length ASC, origin ASC).
func sortResultsFinal(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.ShouldScore != b.ShouldScore {
			return a.ShouldScore > b.ShouldScore
		}
		aLen, bLen := utf8.RuneCountInString(a.Origin), utf8.RuneCountInString(b.Origin)
		if aLen != bLen {
			return aLen < bLen
		}
		return a.Origin < b.Origin
	})
}
