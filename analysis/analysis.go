// Package analysis measures generated signals in the frequency domain.
//
// It is used to verify oscillator output: where a tone really sits, and how
// much harmonic distortion the table quantization adds. All transforms use
// gonum's real FFT on a Hann-windowed, DC-free copy of the input.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-audio-nco/internal/simdops"
)

const (
	// minSamples is the shortest input that yields a peak with two neighbours.
	minSamples = 8

	// harmonicSearchBins is how far around the nominal bin a harmonic peak is searched.
	harmonicSearchBins = 2

	// magnitudeFloor keeps log() finite on silent bins.
	magnitudeFloor = 1e-300

	fftHermitianDivisor = 2
)

var (
	// ErrTooShort indicates the input has too few samples to analyze.
	ErrTooShort = errors.New("signal too short for analysis")

	// ErrInvalidSampleRate indicates a zero, negative, or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("invalid sample rate")

	// ErrInvalidFundamental indicates a fundamental outside (0, Nyquist).
	ErrInvalidFundamental = errors.New("invalid fundamental frequency")
)

// Spectrum returns the magnitude of the first len(samples)/2+1 DFT bins of
// the windowed, DC-removed signal.
func Spectrum(samples []float32) ([]float64, error) {
	if len(samples) < minSamples {
		return nil, fmt.Errorf("%w: %d samples (need %d)", ErrTooShort, len(samples), minSamples)
	}

	seq := make([]float64, len(samples))
	for i, v := range samples {
		seq[i] = float64(v)
	}
	removeDC(seq)
	window.Hann(seq)

	fft := fourier.NewFFT(len(seq))
	coeffs := fft.Coefficients(nil, seq)

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	return mags, nil
}

// DominantFrequency returns the frequency of the strongest spectral peak in
// Hz. The peak bin is refined by fitting a parabola to the log magnitudes
// of the bin and its two neighbours.
func DominantFrequency(samples []float32, sampleRate float64) (float64, error) {
	if err := validateRate(sampleRate); err != nil {
		return 0, err
	}
	mags, err := Spectrum(samples)
	if err != nil {
		return 0, err
	}

	// Bin 0 holds what is left of DC after windowing; skip it.
	peak := floats.MaxIdx(mags[1:]) + 1
	offset := 0.0
	if peak < len(mags)-1 {
		offset = parabolicOffset(mags[peak-1], mags[peak], mags[peak+1])
	}

	binWidth := sampleRate / float64(len(samples))
	return (float64(peak) + offset) * binWidth, nil
}

// HarmonicRatio returns sqrt(Σ P(h·f0) for h=2..harmonics+1) / sqrt(P(f0)),
// the total harmonic distortion as a plain ratio. Harmonics above Nyquist
// are ignored.
func HarmonicRatio(samples []float32, sampleRate, fundamental float64, harmonics int) (float64, error) {
	if err := validateRate(sampleRate); err != nil {
		return 0, err
	}
	if fundamental <= 0 || fundamental >= sampleRate/fftHermitianDivisor {
		return 0, fmt.Errorf("%w: %v Hz", ErrInvalidFundamental, fundamental)
	}
	mags, err := Spectrum(samples)
	if err != nil {
		return 0, err
	}

	binWidth := sampleRate / float64(len(samples))
	fundamentalPower := peakPower(mags, fundamental/binWidth)
	if fundamentalPower == 0 {
		return math.Inf(1), nil
	}

	var harmonicPower float64
	for h := 2; h <= harmonics+1; h++ {
		bin := float64(h) * fundamental / binWidth
		if bin >= float64(len(mags)-1) {
			break
		}
		harmonicPower += peakPower(mags, bin)
	}

	return math.Sqrt(harmonicPower / fundamentalPower), nil
}

// peakPower returns the squared magnitude of the largest bin within
// harmonicSearchBins of the nominal bin position.
func peakPower(mags []float64, bin float64) float64 {
	center := int(math.Round(bin))
	lo := max(center-harmonicSearchBins, 1)
	hi := min(center+harmonicSearchBins, len(mags)-1)
	if lo > hi {
		return 0
	}
	m := floats.Max(mags[lo : hi+1])
	return m * m
}

// parabolicOffset returns the vertex offset in bins, in (-0.5, 0.5), of the
// parabola through three log magnitudes.
func parabolicOffset(left, center, right float64) float64 {
	a := math.Log(math.Max(left, magnitudeFloor))
	b := math.Log(math.Max(center, magnitudeFloor))
	c := math.Log(math.Max(right, magnitudeFloor))
	denom := a - 2*b + c
	if denom == 0 {
		return 0
	}
	return 0.5 * (a - c) / denom
}

func removeDC(seq []float64) {
	mean := simdops.Mean(seq)
	if mean == 0 {
		return
	}
	for i := range seq {
		seq[i] -= mean
	}
}

func validateRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	return nil
}

// RMS returns the root-mean-square level of samples, or zero for an empty slice.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	return math.Sqrt(float64(simdops.Energy(samples)) / float64(len(samples)))
}
