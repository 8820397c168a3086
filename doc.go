// Package fuzzdex implements an in-memory fuzzy phrase index: build once
// from a dictionary of (phrase, id, constraints) tuples, then run many
// must/should fuzzy queries against the frozen index.
//
// A query names one "must" token that has to fuzzy-match within an edit
// distance, optionally boosted by "should" tokens and restricted to a
// constraint. Matching tolerates spelling errors, case and diacritic
// variation, and extra or missing words.
//
// Build phase:
//
//	ix := fuzzdex.New()
//	ix.AddPhrase("Warszawa", 1, nil)
//	ix.AddPhrase("Rakszawa", 2, nil)
//	idx, err := ix.Finish()
//
// Query phase, safe for concurrent use from any number of goroutines:
//
//	q := fuzzdex.NewQuery("waszawa", nil).WithLimit(1)
//	results := idx.Search(q)
package fuzzdex
