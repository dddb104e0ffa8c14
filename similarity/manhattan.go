package similarity

import "math"

// Manhattan is the L1 counterpart of Euclidean: the per-dimension absolute
// differences are summed and mapped through 1/(1+d). It penalizes many small
// coordinate differences less sharply than the squared L2 distance does.
func Manhattan(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var d float64
	for i := range a {
		d += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return float32(1 / (1 + d))
}
