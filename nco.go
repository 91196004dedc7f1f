package nco

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-nco/internal/simdops"
)

// NCO is a numerically controlled oscillator: a 32-bit phase accumulator
// whose top bits index a shared SineLUT.
//
// The accumulator wraps on overflow; each wrap is one completed cycle.
// The increment (delta) always matches the configured frequency and sample
// rate because both setters recompute it before returning.
//
// An NCO must be driven by a single goroutine. The LUT it references is
// read-only and may be shared.
type NCO struct {
	lut   *SineLUT
	table []float32
	mask  uint32
	shift uint

	phase uint32
	delta uint32

	frequency  float64
	sampleRate float64
}

// New creates an oscillator at frequency Hz for the given sample rate,
// reading from lut. The lut is referenced, not copied.
//
// sampleRate must be positive and finite. frequency must be finite and
// within ±sampleRate/2; negative frequencies run the phase backwards.
func New(frequency, sampleRate float64, lut *SineLUT) (*NCO, error) {
	if lut == nil {
		return nil, ErrNilLUT
	}
	if err := validateRates(frequency, sampleRate); err != nil {
		return nil, err
	}

	n := &NCO{
		lut:        lut,
		table:      lut.table,
		mask:       lut.mask,
		shift:      lut.shift,
		frequency:  frequency,
		sampleRate: sampleRate,
	}
	n.updateDelta()

	return n, nil
}

// NewFromConfig creates an oscillator from a validated Config.
// cfg.BitDepth is ignored; the depth comes from lut.
func NewFromConfig(cfg *Config, lut *SineLUT) (*NCO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	return New(cfg.Frequency, cfg.SampleRate, lut)
}

// Sample returns the table value at the current phase and advances the
// accumulator by one increment.
func (n *NCO) Sample() float32 {
	v := n.table[(n.phase>>n.shift)&n.mask]
	n.phase += n.delta
	return v
}

// Fill writes one sample per element of dst and returns len(dst).
// It does not allocate.
func (n *NCO) Fill(dst []float32) int {
	// Locals keep the loop free of pointer reloads.
	table, mask, shift := n.table, n.mask, n.shift
	phase, delta := n.phase, n.delta
	for i := range dst {
		dst[i] = table[(phase>>shift)&mask]
		phase += delta
	}
	n.phase = phase
	return len(dst)
}

// FillScaled is Fill followed by multiplying the block by gain.
func (n *NCO) FillScaled(dst []float32, gain float32) int {
	written := n.Fill(dst)
	if gain != 1 {
		simdops.Float32Ops().Scale(dst, dst, gain)
	}
	return written
}

// SetFrequency changes the output frequency without touching the phase.
// On error the oscillator is unchanged.
func (n *NCO) SetFrequency(frequency float64) error {
	if err := validateRates(frequency, n.sampleRate); err != nil {
		return err
	}
	n.frequency = frequency
	n.updateDelta()
	return nil
}

// SetSampleRate changes the sample rate without touching the phase.
// On error the oscillator is unchanged.
func (n *NCO) SetSampleRate(sampleRate float64) error {
	if err := validateRates(n.frequency, sampleRate); err != nil {
		return err
	}
	n.sampleRate = sampleRate
	n.updateDelta()
	return nil
}

// Frequency returns the configured frequency in Hz.
func (n *NCO) Frequency() float64 { return n.frequency }

// SampleRate returns the configured sample rate in Hz.
func (n *NCO) SampleRate() float64 { return n.sampleRate }

// Phase returns the raw accumulator value.
func (n *NCO) Phase() uint32 { return n.phase }

// DeltaPhase returns the per-sample accumulator increment.
func (n *NCO) DeltaPhase() uint32 { return n.delta }

// ResetPhase moves the accumulator back to zero, the upward zero crossing.
func (n *NCO) ResetPhase() { n.phase = 0 }

// SetPhase moves the accumulator to an arbitrary position, e.g. to lock
// one oscillator to another.
func (n *NCO) SetPhase(phase uint32) { n.phase = phase }

// ActualFrequency returns the frequency the truncated increment really
// produces, which is at most one Resolution below Frequency.
func (n *NCO) ActualFrequency() float64 {
	if n.frequency < 0 {
		return float64(int32(n.delta)) * n.sampleRate / Rotation
	}
	return float64(n.delta) * n.sampleRate / Rotation
}

// Resolution returns the frequency step of one accumulator tick in Hz.
func (n *NCO) Resolution() float64 {
	return n.sampleRate / Rotation
}

// LUT returns the shared table this oscillator reads from.
func (n *NCO) LUT() *SineLUT { return n.lut }

// Lookup reads the shared table directly, wrapping i into range.
func (n *NCO) Lookup(i uint32) float32 { return n.lut.Lookup(i) }

// updateDelta recomputes delta = floor(f * 2^32 / r). Negative increments
// are stored in two's complement so the accumulator runs backwards.
func (n *NCO) updateDelta() {
	n.delta = uint32(int64(math.Floor(n.frequency * Rotation / n.sampleRate)))
}

func validateRates(frequency, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v (must be > 0)", ErrInvalidSampleRate, sampleRate)
	}
	if math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, frequency)
	}
	if nyquist := sampleRate / nyquistDivisor; math.Abs(frequency) > nyquist {
		return fmt.Errorf("%w: %v Hz exceeds Nyquist %v Hz", ErrInvalidFrequency, frequency, nyquist)
	}
	return nil
}
