package nco

import (
	"context"
	"fmt"
)

// Sink consumes blocks of mono float32 samples.
//
// Send returns how many samples of the block were actually written; a
// short count without an error means the sink could not take the rest yet.
// SampleRate reports the rate the sink negotiated, which may differ from
// the rate it was asked for.
type Sink interface {
	Send(samples []float32) (int, error)
	SampleRate() int
}

// RenderStats reports what a Render call did.
type RenderStats struct {
	// SampleRate is the rate the oscillator ran at.
	SampleRate float64

	// Generated is the number of samples produced by the oscillator.
	Generated int64

	// Written is the number of samples the sink accepted.
	Written int64

	// Blocks is the number of blocks filled.
	Blocks int

	// ShortWrites counts Send calls that accepted only part of a block.
	ShortWrites int
}

// Render drives osc into sink block by block until the requested length
// has been written, ctx is cancelled, or the sink fails.
//
// With opts.SyncSampleRate the oscillator is first retuned to the sink's
// reported rate so the output pitch matches what the device really plays.
// When the sink negotiates a lower rate whose Nyquist limit is below the
// oscillator frequency, Render returns an error wrapping ErrInvalidFrequency
// before generating anything and leaves the oscillator unchanged. Disable
// SyncSampleRate to render at the requested rate regardless.
// Cancellation is checked between blocks.
func Render(ctx context.Context, osc *NCO, sink Sink, opts RenderOptions) (RenderStats, error) {
	var stats RenderStats
	if osc == nil || sink == nil {
		return stats, fmt.Errorf("%w: oscillator and sink are required", ErrInvalidConfig)
	}
	if err := opts.Validate(); err != nil {
		return stats, err
	}

	if opts.SyncSampleRate {
		if rate := float64(sink.SampleRate()); rate > 0 && rate != osc.SampleRate() {
			if err := osc.SetSampleRate(rate); err != nil {
				return stats, fmt.Errorf("failed to adopt sink sample rate: %w", err)
			}
		}
	}
	stats.SampleRate = osc.SampleRate()

	gain := opts.Gain
	if gain == 0 {
		gain = 1
	}

	remaining := opts.totalSamples(osc.SampleRate())
	block := make([]float32, min(opts.BlockSize, max(remaining, minRenderBlockSize)))

	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		buf := block[:min(len(block), remaining)]
		osc.FillScaled(buf, gain)
		stats.Generated += int64(len(buf))
		stats.Blocks++

		if err := sendAll(sink, buf, &stats); err != nil {
			return stats, err
		}
		remaining -= len(buf)
	}

	return stats, nil
}

// sendAll pushes buf into sink, resending the unwritten tail after short
// writes.
func sendAll(sink Sink, buf []float32, stats *RenderStats) error {
	stalled := 0
	for len(buf) > 0 {
		n, err := sink.Send(buf)
		if n < 0 || n > len(buf) {
			return fmt.Errorf("sink reported %d samples written for a block of %d", n, len(buf))
		}
		stats.Written += int64(n)
		if err != nil {
			return fmt.Errorf("failed to send audio data: %w", err)
		}

		if n == 0 {
			stalled++
			if stalled >= maxStalledSends {
				return fmt.Errorf("%w: %d consecutive empty writes", ErrSinkStalled, stalled)
			}
			continue
		}
		stalled = 0

		if n < len(buf) {
			stats.ShortWrites++
		}
		buf = buf[n:]
	}
	return nil
}
