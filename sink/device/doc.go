// Package device plays oscillator output on the system audio device.
//
// The default build uses oto, which links the platform sound library
// through cgo. Building with the headless tag replaces [Output] with a
// version that discards samples and needs no sound system.
//
// An Output may be closed from any goroutine, but Send must be called
// from one goroutine at a time.
package device

import (
	"fmt"

	"github.com/tphakala/go-audio-nco/sink"
)

const monoChannels = 1

func validateRate(sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", sink.ErrUnsupportedFormat, sampleRate)
	}
	return nil
}
