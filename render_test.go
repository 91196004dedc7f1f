package nco

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-nco/analysis"
	"github.com/tphakala/go-audio-nco/internal/testutil"
	"github.com/tphakala/go-audio-nco/sink"
)

// stallingSink accepts nothing and reports no error.
type stallingSink struct {
	sends int
}

func (s *stallingSink) Send([]float32) (int, error) {
	s.sends++
	return 0, nil
}

func (s *stallingSink) SampleRate() int { return RateDAT }

// cancellingSink cancels its context after the first accepted block.
type cancellingSink struct {
	*sink.Memory
	cancel context.CancelFunc
}

func (s *cancellingSink) Send(samples []float32) (int, error) {
	n, err := s.Memory.Send(samples)
	s.cancel()
	return n, err
}

// liarSink claims to have written more than it was given.
type liarSink struct{}

func (liarSink) Send(samples []float32) (int, error) { return len(samples) + 1, nil }
func (liarSink) SampleRate() int                     { return RateDAT }

func renderOpts(samples int) RenderOptions {
	opts := DefaultRenderOptions()
	opts.Samples = samples
	return opts
}

func TestRender_WritesExactLength(t *testing.T) {
	lut := MustSineLUT(10)
	osc := newTestNCO(t, 440, RateDAT, lut)
	mem := sink.NewMemory(RateDAT)

	stats, err := Render(context.Background(), osc, mem, renderOpts(1000))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), stats.Generated)
	assert.Equal(t, int64(1000), stats.Written)
	assert.Equal(t, 4, stats.Blocks, "ceil(1000/256)")
	assert.Zero(t, stats.ShortWrites)
	assert.Equal(t, float64(RateDAT), stats.SampleRate)
	assert.Equal(t, 4, mem.Sends())

	want, err := GenerateWithLUT(440, RateDAT, 1000, lut)
	require.NoError(t, err)
	testutil.AssertEqualSamples(t, want, mem.Samples())
}

func TestRender_Duration(t *testing.T) {
	osc := newTestNCO(t, 440, RateDAT, DefaultLUT())
	mem := sink.NewMemory(RateDAT)

	opts := DefaultRenderOptions()
	opts.Duration = 10 * time.Millisecond
	stats, err := Render(context.Background(), osc, mem, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(480), stats.Written)
	assert.Equal(t, 480, mem.Len())
}

func TestRender_ResendsShortWrites(t *testing.T) {
	lut := MustSineLUT(10)
	osc := newTestNCO(t, 440, RateDAT, lut)
	mem := sink.NewMemory(RateDAT)
	mem.SetLimit(100)

	stats, err := Render(context.Background(), osc, mem, renderOpts(512))
	require.NoError(t, err)

	// Each 256-sample block goes out as 100 + 100 + 56.
	assert.Equal(t, 2, stats.Blocks)
	assert.Equal(t, 4, stats.ShortWrites)
	assert.Equal(t, 6, mem.Sends())
	assert.Equal(t, int64(512), stats.Written)

	want, err := GenerateWithLUT(440, RateDAT, 512, lut)
	require.NoError(t, err)
	testutil.AssertEqualSamples(t, want, mem.Samples())
}

func TestRender_StalledSink(t *testing.T) {
	osc := newTestNCO(t, 440, RateDAT, DefaultLUT())
	s := &stallingSink{}

	stats, err := Render(context.Background(), osc, s, renderOpts(1000))
	require.ErrorIs(t, err, ErrSinkStalled)
	assert.Equal(t, maxStalledSends, s.sends)
	assert.Zero(t, stats.Written)
}

func TestRender_SinkError(t *testing.T) {
	osc := newTestNCO(t, 440, RateDAT, DefaultLUT())
	mem := sink.NewMemory(RateDAT)
	boom := errors.New("xrun")
	mem.FailWith(boom)

	_, err := Render(context.Background(), osc, mem, renderOpts(1000))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to send audio data")
}

func TestRender_SinkOverReports(t *testing.T) {
	osc := newTestNCO(t, 440, RateDAT, DefaultLUT())
	_, err := Render(context.Background(), osc, liarSink{}, renderOpts(10))
	require.Error(t, err)
}

// TestRender_AdoptsNegotiatedRate verifies the oscillator is retuned to the
// rate the sink actually runs at.
func TestRender_AdoptsNegotiatedRate(t *testing.T) {
	osc := newTestNCO(t, 440, RateDAT, DefaultLUT())
	mem := sink.NewMemory(45000, RateCD, RateDAT)
	require.Equal(t, RateCD, mem.SampleRate())

	opts := DefaultRenderOptions()
	stats, err := Render(context.Background(), osc, mem, opts)
	require.NoError(t, err)

	assert.Equal(t, float64(RateCD), osc.SampleRate())
	assert.Equal(t, float64(RateCD), stats.SampleRate)
	assert.Equal(t, uint32(42852281), osc.DeltaPhase())
	assert.Equal(t, RateCD, mem.Len(), "one second at the negotiated rate")

	measured, err := analysis.DominantFrequency(mem.Samples(), RateCD)
	require.NoError(t, err)
	assert.InDelta(t, 440, measured, testutil.FrequencyTolerance)
}

func TestRender_SyncDisabled(t *testing.T) {
	osc := newTestNCO(t, 440, RateDAT, DefaultLUT())
	mem := sink.NewMemory(RateCD)

	opts := renderOpts(100)
	opts.SyncSampleRate = false
	_, err := Render(context.Background(), osc, mem, opts)
	require.NoError(t, err)
	assert.Equal(t, float64(RateDAT), osc.SampleRate())
}

func TestRender_NegotiatedRateRejected(t *testing.T) {
	osc := newTestNCO(t, 440, RateDAT, DefaultLUT())
	mem := sink.NewMemory(600)

	_, err := Render(context.Background(), osc, mem, renderOpts(100))
	require.ErrorIs(t, err, ErrInvalidFrequency)
	assert.Equal(t, float64(RateDAT), osc.SampleRate(), "oscillator untouched")
	assert.Zero(t, mem.Len())
}

// TestRender_DownwardNegotiationAboveNyquist covers a tone that is valid at
// the requested rate but not at the rate the sink falls back to.
func TestRender_DownwardNegotiationAboveNyquist(t *testing.T) {
	osc := newTestNCO(t, 30000, RateHiRes96, DefaultLUT())
	delta := osc.DeltaPhase()
	mem := sink.NewMemory(RateHiRes96, RateCD)

	stats, err := Render(context.Background(), osc, mem, renderOpts(1000))
	require.ErrorIs(t, err, ErrInvalidFrequency)
	assert.Contains(t, err.Error(), "failed to adopt sink sample rate")
	assert.Zero(t, stats.Generated)
	assert.Equal(t, float64(RateHiRes96), osc.SampleRate())
	assert.Equal(t, delta, osc.DeltaPhase())

	opts := renderOpts(1000)
	opts.SyncSampleRate = false
	stats, err = Render(context.Background(), osc, mem, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stats.Written)
}

func TestRender_Gain(t *testing.T) {
	lut := MustSineLUT(10)
	osc := newTestNCO(t, 440, RateDAT, lut)
	mem := sink.NewMemory(RateDAT)

	opts := renderOpts(300)
	opts.Gain = 0.5
	_, err := Render(context.Background(), osc, mem, opts)
	require.NoError(t, err)

	want, err := GenerateWithLUT(440, RateDAT, 300, lut)
	require.NoError(t, err)
	got := mem.Samples()
	for i := range want {
		require.InDelta(t, float64(want[i])*0.5, float64(got[i]), 1e-7, "sample %d", i)
	}
}

func TestRender_CancelledBeforeStart(t *testing.T) {
	osc := newTestNCO(t, 440, RateDAT, DefaultLUT())
	mem := sink.NewMemory(RateDAT)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := Render(ctx, osc, mem, renderOpts(1000))
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Generated)
	assert.Zero(t, mem.Len())
}

func TestRender_CancelledBetweenBlocks(t *testing.T) {
	osc := newTestNCO(t, 440, RateDAT, DefaultLUT())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := &cancellingSink{Memory: sink.NewMemory(RateDAT), cancel: cancel}

	stats, err := Render(ctx, osc, s, renderOpts(10*DefaultBlockSize))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stats.Blocks)
	assert.Equal(t, int64(DefaultBlockSize), stats.Written)
}

func TestRender_InvalidArguments(t *testing.T) {
	osc := newTestNCO(t, 440, RateDAT, DefaultLUT())
	mem := sink.NewMemory(RateDAT)

	_, err := Render(context.Background(), nil, mem, renderOpts(10))
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = Render(context.Background(), osc, nil, renderOpts(10))
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = Render(context.Background(), osc, mem, RenderOptions{Samples: 10})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

// TestRender_WAVRoundTrip renders a tone to a WAV file, decodes it and
// measures the pitch.
func TestRender_WAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	out, err := sink.NewWAV(path, RateCD, 16, 1)
	require.NoError(t, err)

	osc := newTestNCO(t, 1000, RateCD, DefaultLUT())
	stats, err := Render(context.Background(), osc, out, DefaultRenderOptions())
	require.NoError(t, err)
	require.NoError(t, out.Close())
	assert.Equal(t, int64(RateCD), stats.Written)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	require.Len(t, buf.Data, RateCD)

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / 32767
	}
	measured, err := analysis.DominantFrequency(samples, float64(dec.SampleRate))
	require.NoError(t, err)
	assert.InDelta(t, 1000, measured, testutil.FrequencyTolerance)
}
