// Package testutil provides reusable test helper functions for oscillator tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-audio-nco/internal/simdops"
)

// Default tolerances for various test scenarios.
const (
	// Float32Tolerance covers float32 rounding of values in [-1, 1].
	Float32Tolerance = 1e-7

	// FrequencyTolerance is the default allowed error of a measured tone, in Hz.
	FrequencyTolerance = 0.5
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F simdops.Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange[F simdops.Float](t *testing.T, s []F, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if float64(v) < minVal || float64(v) > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, float64(v), minVal, maxVal)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertEqualSamples verifies two sample blocks are bit-identical.
func AssertEqualSamples(t *testing.T, expected, actual []float32, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return assert.Fail(t, "samples differ",
				"sample[%d]: expected %v, got %v", i, expected[i], actual[i])
		}
	}
	return true
}

// GenerateSine returns n samples of amplitude*sin(2π·freq·i/rate) computed in float64.
func GenerateSine(freq, rate, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return out
}

// UpwardZeroCrossings returns the indices i where s[i-1] < 0 <= s[i].
func UpwardZeroCrossings[F simdops.Float](s []F) []int {
	var idx []int
	for i := 1; i < len(s); i++ {
		if s[i-1] < 0 && s[i] >= 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// ToFloat64 widens a float32 block.
func ToFloat64(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}
