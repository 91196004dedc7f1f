//go:build !headless

package device

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/tphakala/go-audio-nco/sink"
)

const (
	// bufferSize is the latency oto is asked to buffer.
	bufferSize = 50 * time.Millisecond

	// drainPollInterval is how often Close checks whether playback finished.
	drainPollInterval = 10 * time.Millisecond

	bytesPerFloat32 = 4
)

// Output plays samples on the default audio output through oto as mono
// float32. Send blocks until the player has pulled the block, so a render
// loop runs at the device's pace.
type Output struct {
	ctx     *oto.Context
	player  *oto.Player
	pr      *io.PipeReader
	pw      *io.PipeWriter
	byteBuf []byte
	rate    int

	mu     sync.Mutex // guards closed
	closed bool
}

// New opens the audio output at sampleRate. oto allows one context per
// process, so only one Output may exist at a time.
func New(sampleRate int) (*Output, error) {
	if err := validateRate(sampleRate); err != nil {
		return nil, err
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: monoChannels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	pr, pw := io.Pipe()
	player := ctx.NewPlayer(pr)
	player.Play()

	return &Output{
		ctx:    ctx,
		player: player,
		pr:     pr,
		pw:     pw,
		rate:   sampleRate,
	}, nil
}

func (o *Output) isClosed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

// Send encodes samples as little-endian float32 and hands them to the
// player. It returns the number of whole samples the player took.
// A Close racing with a blocked Send makes the write fail.
func (o *Output) Send(samples []float32) (int, error) {
	if o.isClosed() {
		return 0, sink.ErrClosed
	}
	if len(samples) == 0 {
		return 0, nil
	}

	need := len(samples) * bytesPerFloat32
	if cap(o.byteBuf) < need {
		o.byteBuf = make([]byte, need)
	}
	buf := o.byteBuf[:need]
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*bytesPerFloat32:], math.Float32bits(s))
	}

	n, err := o.pw.Write(buf)
	if err != nil {
		return n / bytesPerFloat32, fmt.Errorf("failed to write to audio device: %w", err)
	}
	return n / bytesPerFloat32, nil
}

// SampleRate returns the rate the context was opened with.
func (o *Output) SampleRate() int { return o.rate }

// Close waits for queued audio to finish playing and releases the player.
func (o *Output) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	o.mu.Unlock()

	_ = o.pw.Close()
	for o.player.IsPlaying() {
		time.Sleep(drainPollInterval)
	}
	err := o.player.Close()
	_ = o.pr.Close()
	if err != nil {
		return fmt.Errorf("failed to close audio player: %w", err)
	}
	return o.ctx.Err()
}
