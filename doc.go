// Package nco provides a numerically controlled oscillator for real-time
// sine synthesis in pure Go.
//
// An oscillator keeps a 32-bit phase accumulator that represents the
// position within one cycle on a [0, 2^32) scale. Each sample takes the top
// bits of the accumulator as an index into a quantized sine table and then
// adds a fixed increment; the accumulator wraps on overflow, and every wrap
// is one completed cycle. This is direct digital synthesis: no division and
// no trigonometric call in the per-sample path.
//
// # Features
//
//   - Allocation-free, O(1) sample production suitable for audio callbacks
//   - Frequency resolution of sampleRate/2^32 Hz (about 11 µHz at 48 kHz)
//   - One immutable [SineLUT] shared by any number of oscillators
//   - Runtime frequency and sample rate changes that preserve phase
//   - A block renderer that pushes into any [Sink] and adopts the sink's
//     negotiated sample rate
//
// # Quick Start
//
// For one-shot generation:
//
//	samples, err := nco.Generate(440, 48000, 48000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming with a shared table:
//
//	lut := nco.MustSineLUT(10)
//	osc, err := nco.New(440, 48000, lut)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := make([]float32, 256)
//	for running {
//	    osc.Fill(buf)
//	    device.Send(buf)
//	}
//
// # Increment
//
// The per-sample increment is floor(frequency * 2^32 / sampleRate). For
// 440 Hz at 48 kHz that is 39370533. [NCO.SetFrequency] and
// [NCO.SetSampleRate] recompute it before returning, so the increment never
// disagrees with the configured values.
//
// # Table Size
//
// A table of 2^bits float32 entries costs 4·2^bits bytes. Truncating the
// phase to the table resolution adds distortion of roughly 6 dB per bit
// below the fundamental; 10 to 12 bits suit audio-rate synthesis.
//
// # Thread Safety
//
// A [SineLUT] is read-only after construction and may be shared across
// goroutines. An [NCO] has no internal locking and must be driven by a
// single goroutine.
package nco
