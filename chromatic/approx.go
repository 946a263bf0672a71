package chromatic

import "github.com/cwbudde/algo-approx"

// FastRatio approximates 2^(n/12) with a fast exponential. It trades a small
// relative error for speed and is meant for displays and coarse estimates.
func FastRatio(n int) float32 {
	return pow2Approx(float32(n) / 12.0)
}

func pow2Approx(x float32) float32 {
	const ln2 = 0.69314718055994530942
	return approx.FastExp(x * ln2)
}
