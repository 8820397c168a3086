package fuzzdex

import "github.com/hbollon/go-edlib"

// SimilarityAlgorithm selects the algorithm used by Similarity. It is a
// diagnostic helper separate from the ranking path described in §4.5: the
// index itself always ranks by the trigram heatmap and bounded Levenshtein
// distance in internal/text, never by one of these.
type SimilarityAlgorithm int

const (
	// JaroWinkler favors strings sharing a common prefix; good for names.
	JaroWinkler SimilarityAlgorithm = iota
	// Levenshtein similarity, normalized to [0, 1] by string length.
	Levenshtein
	// Cosine similarity over character bigrams.
	Cosine
)

// Similarity reports how similar a and b are, in [0, 1], using algorithm.
// It exists so a caller can explain or debug why a particular candidate
// scored the way it did; Index.Search never calls it.
func Similarity(a, b string, algorithm SimilarityAlgorithm) (float64, error) {
	if a == b {
		return 1.0, nil
	}

	var alg edlib.EditDistanceAlgorithm
	switch algorithm {
	case JaroWinkler:
		alg = edlib.JaroWinkler
	case Levenshtein:
		alg = edlib.Levenshtein
	case Cosine:
		alg = edlib.Cosine
	default:
		alg = edlib.JaroWinkler
	}

	score, err := edlib.StringsSimilarity(a, b, alg)
	if err != nil {
		return 0, err
	}
	return float64(score), nil
}
