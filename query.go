package fuzzdex

import "github.com/blaa/fuzzdex/internal/text"

const (
	defaultMaxDistance = 2
	defaultScanCutoff  = float32(0.3)
)

// Query describes one fuzzy search. It is an immutable value type: every
// With* method returns a new Query rather than mutating the receiver, so a
// base Query can be reused as a template for several variants without
// aliasing surprises. Zero value is not directly useful; construct with
// NewQuery.
type Query struct {
	must        string
	should      []string
	constraint  *ConstraintID
	limit       *int
	maxDistance *int
	scanCutoff  float32
}

// NewQuery builds a Query from a must token and should tokens. must is
// always tokenized with min_length=1, so it is lowercased and stripped of
// separators even when it is a single word. If that yields several tokens,
// the longest is promoted to Must and the remaining tokens are prepended to
// should. Should tokens are stored as given.
func NewQuery(must string, should []string) Query {
	parts := text.Tokenize(must, 1)

	q := Query{scanCutoff: defaultScanCutoff}

	switch len(parts) {
	case 0:
		q.must = ""
	case 1:
		q.must = parts[0]
	default:
		longestIdx := 0
		for i, p := range parts {
			if len(p) > len(parts[longestIdx]) {
				longestIdx = i
			}
		}
		q.must = parts[longestIdx]
		rest := make([]string, 0, len(parts)-1+len(should))
		for i, p := range parts {
			if i != longestIdx {
				rest = append(rest, p)
			}
		}
		rest = append(rest, should...)
		should = rest
	}

	if len(should) > 0 {
		q.should = append([]string(nil), should...)
	}

	return q
}

// WithConstraint restricts results to phrases whose constraint set contains c.
func (q Query) WithConstraint(c ConstraintID) Query {
	q.constraint = &c
	return q
}

// WithLimit caps the number of returned results.
func (q Query) WithLimit(limit int) Query {
	q.limit = &limit
	return q
}

// WithMaxDistance overrides the default maximum edit distance of 2.
func (q Query) WithMaxDistance(maxDistance int) Query {
	q.maxDistance = &maxDistance
	return q
}

// WithScanCutoff overrides the default early-break factor of 0.3.
func (q Query) WithScanCutoff(cutoff float32) Query {
	q.scanCutoff = cutoff
	return q
}

func (q Query) effectiveMaxDistance() int {
	if q.maxDistance == nil {
		return defaultMaxDistance
	}
	return *q.maxDistance
}

