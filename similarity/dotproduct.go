package similarity

// DotProduct scores two vectors by their inner product. Unlike Cosine it is
// sensitive to magnitude, which suits embeddings that arrive unit-normalized
// from the provider (there the two metrics agree). Mismatched or empty
// inputs score 0.
func DotProduct(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var acc float64
	for i := range a {
		acc += float64(a[i]) * float64(b[i])
	}
	return float32(acc)
}
