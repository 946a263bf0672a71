// Package chromatic maps semitone offsets from A4 to twelve-tone equal-tempered
// frequency ratios.
package chromatic

import "math"

// semitoneRatio is 2^(1/12) rounded to float32. It is set once at init and only read.
var semitoneRatio = float32(math.Pow(2, 1.0/12.0))

// SemitoneRatio returns the frequency ratio of one equal-tempered semitone.
func SemitoneRatio() float32 {
	return semitoneRatio
}

// FrequencyRatio returns the frequency of the note n semitones away from A4 as a
// multiple of the A4 frequency. Whole octaves are folded into a power-of-two
// coefficient so the semitone exponent stays small.
//
// Negative offsets fold upward: FrequencyRatio(-12) is 2, not 0.5, and
// FrequencyRatio(-1) is 2*x^11. Use DirectRatio for x^n without folding.
func FrequencyRatio(n int) float32 {
	coefficient := 1.0
	exponent := float64(n)
	if n < 0 {
		octaves := math.Ceil(-float64(n) / 12.0)
		coefficient = math.Pow(2, octaves)
		exponent = float64(n) + 12*octaves
	}
	if n >= 12 {
		octaves := math.Floor(float64(n) / 12.0)
		coefficient = math.Pow(2, octaves)
		exponent = float64(n) - 12*octaves
	}
	return float32(coefficient * math.Pow(float64(semitoneRatio), exponent))
}

// DirectRatio returns x^n for the float32 semitone ratio x, without octave folding.
func DirectRatio(n int) float32 {
	return float32(math.Pow(float64(semitoneRatio), float64(n)))
}

// Frequency returns the frequency in Hz of the note n semitones from a reference
// tuned to referenceHz.
func Frequency(n int, referenceHz float32) float32 {
	return referenceHz * FrequencyRatio(n)
}
