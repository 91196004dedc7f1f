package nco

// Lookup table bit depth limits
const (
	MinBitDepth     = 1  // Smallest table: 2 entries
	MaxBitDepth     = 31 // Index must fit below the top bit of the accumulator
	DefaultBitDepth = 10 // 1024 entries, 4 KiB of float32
)

// Accumulator constants
const (
	accumulatorBits = 32

	// Rotation is one full cycle on the accumulator scale (2 * 2^31 = 2^32).
	Rotation = 2.0 * (1 << (accumulatorBits - 1))
)

// Common sample rates.
const (
	RateCD        = 44100
	RateDAT       = 48000
	RateHiRes96   = 96000
	RateTelephony = 8000
)

// Rendering constants
const (
	DefaultBlockSize   = 256 // Samples per Send, same as the classic tone generator loop
	DefaultFrequency   = 440.0
	DefaultSampleRate  = RateDAT
	maxStalledSends    = 8 // Consecutive zero-length writes before giving up
	nyquistDivisor     = 2
	minRenderBlockSize = 1
)
