//go:build headless

package device

import (
	"sync"

	"github.com/tphakala/go-audio-nco/sink"
)

// Output discards samples. It stands in for the audio output in builds
// without a sound system.
type Output struct {
	rate int

	mu     sync.Mutex
	closed bool
}

// New returns a discarding output running at sampleRate.
func New(sampleRate int) (*Output, error) {
	if err := validateRate(sampleRate); err != nil {
		return nil, err
	}
	return &Output{rate: sampleRate}, nil
}

// Send accepts and drops every sample.
func (o *Output) Send(samples []float32) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return 0, sink.ErrClosed
	}
	return len(samples), nil
}

// SampleRate returns the configured rate.
func (o *Output) SampleRate() int { return o.rate }

// Close marks the output closed.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	return nil
}
