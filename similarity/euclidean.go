package similarity

import "math"

// Euclidean maps L2 distance into a similarity score with 1/(1+d), so
// identical vectors score 1 and the score falls toward 0 as the vectors
// drift apart. Mismatched or empty inputs score 0.
func Euclidean(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var sq float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sq += d * d
	}
	return float32(1 / (1 + math.Sqrt(sq)))
}
