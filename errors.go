package nco

import "errors"

// Common errors returned by the oscillator package.
var (
	// ErrInvalidBitDepth indicates a lookup table depth outside [MinBitDepth, MaxBitDepth].
	ErrInvalidBitDepth = errors.New("invalid lookup table bit depth")

	// ErrInvalidSampleRate indicates a zero, negative, or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("invalid sample rate")

	// ErrInvalidFrequency indicates a non-finite frequency or one beyond Nyquist.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrNilLUT indicates an oscillator was constructed without a lookup table.
	ErrNilLUT = errors.New("lookup table is nil")

	// ErrInvalidConfig indicates invalid rendering or oscillator configuration.
	ErrInvalidConfig = errors.New("invalid oscillator configuration")

	// ErrSinkStalled indicates a sink repeatedly accepted zero samples without an error.
	ErrSinkStalled = errors.New("sink stalled")
)
