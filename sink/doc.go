// Package sink provides destinations for oscillator output.
//
// Every sink implements the nco.Sink contract: Send accepts a block of mono
// float32 samples in [-1, 1] and reports how many it took, and SampleRate
// reports the rate the destination actually runs at.
//
//   - [WAV] encodes PCM to a file with go-audio/wav.
//   - [Memory] captures samples and simulates device rate negotiation.
//
// Playback on the audio device lives in the device subpackage, which keeps
// this package free of cgo.
package sink

import "errors"

// Common errors returned by sinks.
var (
	// ErrClosed indicates Send was called after Close.
	ErrClosed = errors.New("sink is closed")

	// ErrUnsupportedFormat indicates an unsupported bit depth, channel count, or rate.
	ErrUnsupportedFormat = errors.New("unsupported sink format")
)

// Sample format constants
const (
	monoChannels   = 1
	stereoChannels = 2

	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0
)

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// clamp limits a sample to [-1, 1].
func clamp(sample float64) float64 {
	if sample > 1.0 {
		return 1.0
	} else if sample < -1.0 {
		return -1.0
	}
	return sample
}
