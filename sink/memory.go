package sink

import "math"

// Memory is an in-memory sink. It mimics a device that snaps the requested
// rate to the nearest rate it supports, and can be limited to accept only
// part of each block.
type Memory struct {
	requested int
	rate      int
	limit     int
	err       error
	samples   []float32
	sends     int
}

// NewMemory creates a memory sink. When supported rates are given the sink
// runs at the one nearest requestedRate; otherwise at requestedRate.
func NewMemory(requestedRate int, supported ...int) *Memory {
	return &Memory{
		requested: requestedRate,
		rate:      NearestRate(requestedRate, supported...),
	}
}

// NearestRate returns the entry of supported closest to requested, or
// requested itself when supported is empty. Ties go to the higher rate.
func NearestRate(requested int, supported ...int) int {
	if len(supported) == 0 {
		return requested
	}
	best := supported[0]
	bestDist := math.MaxInt
	for _, r := range supported {
		d := r - requested
		if d < 0 {
			d = -d
		}
		if d < bestDist || (d == bestDist && r > best) {
			best, bestDist = r, d
		}
	}
	return best
}

// SetLimit caps how many samples a single Send accepts. Zero removes the cap.
func (m *Memory) SetLimit(n int) { m.limit = n }

// FailWith makes every following Send return err without accepting samples.
// A nil err clears the failure.
func (m *Memory) FailWith(err error) { m.err = err }

// Send appends up to the configured limit of samples.
func (m *Memory) Send(samples []float32) (int, error) {
	m.sends++
	if m.err != nil {
		return 0, m.err
	}
	n := len(samples)
	if m.limit > 0 && n > m.limit {
		n = m.limit
	}
	m.samples = append(m.samples, samples[:n]...)
	return n, nil
}

// SampleRate returns the negotiated rate.
func (m *Memory) SampleRate() int { return m.rate }

// RequestedRate returns the rate the sink was asked for.
func (m *Memory) RequestedRate() int { return m.requested }

// Samples returns a copy of everything accepted so far.
func (m *Memory) Samples() []float32 {
	out := make([]float32, len(m.samples))
	copy(out, m.samples)
	return out
}

// Len returns the number of samples accepted so far.
func (m *Memory) Len() int { return len(m.samples) }

// Sends returns the number of Send calls.
func (m *Memory) Sends() int { return m.sends }

// Reset drops captured samples and counters; rate, limit and failure stay.
func (m *Memory) Reset() {
	m.samples = m.samples[:0]
	m.sends = 0
}
