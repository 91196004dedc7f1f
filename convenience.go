package nco

import "fmt"

// NewTone creates an oscillator on the shared DefaultLUT.
func NewTone(frequency, sampleRate float64) (*NCO, error) {
	return New(frequency, sampleRate, DefaultLUT())
}

// Generate is a convenience function for one-shot tone generation.
// It returns n samples of a sine at frequency Hz starting at phase zero.
func Generate(frequency, sampleRate float64, n int) ([]float32, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: sample count must be >= 0", ErrInvalidConfig)
	}
	osc, err := NewTone(frequency, sampleRate)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	osc.Fill(out)
	return out, nil
}

// GenerateWithLUT is like Generate but reads from the given table.
func GenerateWithLUT(frequency, sampleRate float64, n int, lut *SineLUT) ([]float32, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: sample count must be >= 0", ErrInvalidConfig)
	}
	osc, err := New(frequency, sampleRate, lut)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	osc.Fill(out)
	return out, nil
}
