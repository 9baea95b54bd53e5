package match

import (
	"fmt"
	"math"
)

// CosineSimilarity computes the cosine of the angle between two embedding
// vectors. Vectors of different dimensions are an error; if either vector
// has zero magnitude the similarity is 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

// SimilarityToScore maps cosine similarity in [-1,1] linearly onto [0,100].
// The full range is used rather than truncating negatives, so a similarity
// of 0 lands at 50 and stays distinguishable from an opposing vector.
func SimilarityToScore(similarity float64) int {
	return ClampScore(int(math.Round(((similarity + 1) / 2) * 100)))
}

// BlendScores combines the qualitative assessment score with the geometric
// embedding score. The pipeline takes the higher of the two: either signal
// alone is enough to surface a candidate for review.
func BlendScores(qualitative, geometric int) int {
	if qualitative > geometric {
		return ClampScore(qualitative)
	}
	return ClampScore(geometric)
}

// ClampScore bounds a score to [0,100]
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
