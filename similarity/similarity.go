// Package similarity scores pairs of embedding vectors. Every metric here
// shares the same shape: higher means more alike, and vectors of different
// (or zero) length score 0 rather than erroring, so a Func can be swapped in
// freely wherever search ranks candidates.
package similarity

import "math"

// Func scores two embedding vectors. Higher values mean greater similarity.
type Func func(a, b []float32) float32

// Cosine scores two vectors by the angle between them, in [-1, 1] with 1
// meaning identical direction. Magnitude is ignored, which makes it the
// usual default for text embeddings. A zero vector scores 0.
func Cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, nA, nB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		nA += x * x
		nB += y * y
	}

	if nA == 0 || nB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(nA) * math.Sqrt(nB)))
}
