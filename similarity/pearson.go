package similarity

import "math"

// Pearson scores two vectors by their linear correlation, in [-1, 1].
// Centering on the per-vector mean makes the score invariant to uniform
// shifts, which Cosine is not. A constant vector has no variance to
// correlate against and scores 0.
func Pearson(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var sumA, sumB float64
	for i := range a {
		sumA += float64(a[i])
		sumB += float64(b[i])
	}
	n := float64(len(a))
	muA, muB := sumA/n, sumB/n

	var cov, varA, varB float64
	for i := range a {
		da := float64(a[i]) - muA
		db := float64(b[i]) - muB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0
	}
	return float32(cov / math.Sqrt(varA*varB))
}
