// Package analysis measures the pitch of recorded signals and places it on
// the chromatic scale.
package analysis

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-chromatic/chromatic"
)

var (
	// ErrSignalTooShort is returned when fewer samples remain than one FFT window needs.
	ErrSignalTooShort = errors.New("signal too short for pitch analysis")
	// ErrSilent is returned when the signal has no energy above the silence threshold.
	ErrSilent = errors.New("signal is silent")
	// ErrOutOfRange is returned when a frequency sits implausibly far from the reference.
	ErrOutOfRange = errors.New("frequency out of range")
)

const (
	minFFTSize = 1024
	maxFFTSize = 65536

	// maxSemitones keeps the rounded offset well inside the int range.
	maxSemitones = 1 << 20
)

// Detection is the nearest chromatic note for a measured frequency.
type Detection struct {
	PeakHz float64 `json:"peak_hz"`
	Offset int     `json:"offset"`
	Name   string  `json:"name"`
	Cents  float64 `json:"cents"`
	NoteHz float64 `json:"note_hz"`
}

// Detect measures the dominant frequency of a mono signal and maps it to the
// nearest note relative to referenceHz.
func Detect(samples []float64, sampleRate int, referenceHz float64) (Detection, error) {
	hz, err := PeakFrequency(samples, sampleRate)
	if err != nil {
		return Detection{}, err
	}
	return Nearest(hz, referenceHz)
}

// PeakFrequency returns the frequency of the strongest spectral peak, refined
// by parabolic interpolation on log magnitudes around the peak bin.
func PeakFrequency(samples []float64, sampleRate int) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	x := trimLeadingSilence(samples, 1e-6)
	if len(x) == 0 {
		return 0, ErrSilent
	}
	n := fftSizeFor(len(x))
	if n < minFFTSize {
		return 0, fmt.Errorf("%w: %d samples after trim, need %d", ErrSignalTooShort, len(x), minFFTSize)
	}

	plan, err := algofft.NewPlanReal64(n)
	if err != nil {
		return 0, fmt.Errorf("fft plan: %w", err)
	}
	buf := make([]float64, n)
	for i := 0; i < n; i++ {
		hann := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		buf[i] = x[i] * hann
	}
	spec := make([]complex128, n/2+1)
	plan.Forward(spec, buf)

	mags := make([]float64, len(spec))
	for k := range spec {
		mags[k] = math.Hypot(real(spec[k]), imag(spec[k]))
	}

	peak := 1
	for k := 2; k < n/2; k++ {
		if mags[k] > mags[peak] {
			peak = k
		}
	}
	if mags[peak] == 0 {
		return 0, ErrSilent
	}

	bin := float64(peak) + interpolatePeak(mags[peak-1], mags[peak], mags[peak+1])
	return bin * float64(sampleRate) / float64(n), nil
}

// Nearest maps hz to the closest chromatic offset from referenceHz.
func Nearest(hz float64, referenceHz float64) (Detection, error) {
	if !isPositiveFinite(hz) {
		return Detection{}, fmt.Errorf("frequency must be > 0, got %g", hz)
	}
	if !isPositiveFinite(referenceHz) {
		return Detection{}, fmt.Errorf("reference must be > 0, got %g", referenceHz)
	}

	semitones := 12 * math.Log2(hz/referenceHz)
	if math.IsNaN(semitones) || math.Abs(semitones) > maxSemitones {
		return Detection{}, fmt.Errorf("%w: %g Hz against %g Hz", ErrOutOfRange, hz, referenceHz)
	}
	rounded := math.Round(semitones)
	offset := int(rounded)
	return Detection{
		PeakHz: hz,
		Offset: offset,
		Name:   chromatic.NoteName(offset),
		Cents:  100 * (semitones - rounded),
		NoteHz: referenceHz * float64(chromatic.DirectRatio(offset)),
	}, nil
}

// interpolatePeak returns the fractional bin shift of a peak in [-0.5, 0.5].
func interpolatePeak(left, center, right float64) float64 {
	if left <= 0 || center <= 0 || right <= 0 {
		return 0
	}
	a := math.Log(left)
	b := math.Log(center)
	c := math.Log(right)
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	p := 0.5 * (a - c) / den
	if p > 0.5 {
		p = 0.5
	}
	if p < -0.5 {
		p = -0.5
	}
	return p
}

func fftSizeFor(length int) int {
	n := 1
	for n*2 <= length && n*2 <= maxFFTSize {
		n *= 2
	}
	return n
}

func trimLeadingSilence(x []float64, threshold float64) []float64 {
	for i, v := range x {
		if math.Abs(v) > threshold {
			return x[i:]
		}
	}
	return nil
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
