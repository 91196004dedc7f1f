package nco

import (
	"fmt"
	"math"
	"time"
)

// Config holds oscillator configuration.
type Config struct {
	// Frequency is the output frequency in Hz.
	// Must be finite and within ±SampleRate/2.
	Frequency float64

	// SampleRate is the output sample rate in Hz. Must be positive.
	SampleRate float64

	// BitDepth is log2 of the lookup table length, in [MinBitDepth, MaxBitDepth].
	BitDepth int
}

// DefaultConfig returns a 440 Hz tone at 48 kHz on a 1024-entry table.
func DefaultConfig() Config {
	return Config{
		Frequency:  DefaultFrequency,
		SampleRate: DefaultSampleRate,
		BitDepth:   DefaultBitDepth,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.BitDepth < MinBitDepth || c.BitDepth > MaxBitDepth {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidBitDepth, c.BitDepth, MinBitDepth, MaxBitDepth)
	}
	return validateRates(c.Frequency, c.SampleRate)
}

// Build validates the configuration and returns a new table together with
// an oscillator bound to it. Use New directly to share an existing table.
func (c *Config) Build() (*NCO, *SineLUT, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	lut, err := NewSineLUT(c.BitDepth)
	if err != nil {
		return nil, nil, err
	}
	n, err := NewFromConfig(c, lut)
	if err != nil {
		return nil, nil, err
	}
	return n, lut, nil
}

// RenderOptions controls Render.
type RenderOptions struct {
	// Samples is the number of samples to produce.
	// When zero, Duration is used instead.
	Samples int

	// Duration is the length of the output. It is converted to samples at
	// the oscillator's sample rate after any sink rate negotiation.
	Duration time.Duration

	// BlockSize is the number of samples handed to the sink per Send.
	BlockSize int

	// Gain scales every block. Zero means unity.
	Gain float32

	// SyncSampleRate retunes the oscillator to the sink's reported rate
	// before rendering.
	SyncSampleRate bool
}

// DefaultRenderOptions returns options for one second of audio in
// DefaultBlockSize blocks with sample rate negotiation enabled.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Duration:       time.Second,
		BlockSize:      DefaultBlockSize,
		Gain:           1,
		SyncSampleRate: true,
	}
}

// Validate checks if the render options are valid.
func (o *RenderOptions) Validate() error {
	if o.Samples < 0 {
		return fmt.Errorf("%w: samples must be >= 0", ErrInvalidConfig)
	}
	if o.Duration < 0 {
		return fmt.Errorf("%w: duration must be >= 0", ErrInvalidConfig)
	}
	if o.Samples == 0 && o.Duration == 0 {
		return fmt.Errorf("%w: samples or duration must be set", ErrInvalidConfig)
	}
	if o.BlockSize < minRenderBlockSize {
		return fmt.Errorf("%w: block size must be at least %d", ErrInvalidConfig, minRenderBlockSize)
	}
	if math.IsNaN(float64(o.Gain)) || math.IsInf(float64(o.Gain), 0) {
		return fmt.Errorf("%w: gain must be finite", ErrInvalidConfig)
	}
	return nil
}

// totalSamples resolves the requested length at sampleRate.
func (o *RenderOptions) totalSamples(sampleRate float64) int {
	if o.Samples > 0 {
		return o.Samples
	}
	return int(math.Round(o.Duration.Seconds() * sampleRate))
}
