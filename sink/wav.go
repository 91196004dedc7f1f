package sink

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-audio-nco/internal/simdops"
)

// wavFormatPCM is the WAVE_FORMAT_PCM audio format tag.
const wavFormatPCM = 1

// WAV writes oscillator output to a PCM WAV file. Mono input is duplicated
// to both channels when the file is stereo.
type WAV struct {
	file     *os.File
	encoder  *wav.Encoder
	intBuf   *audio.IntBuffer
	stereo   []float32
	maxVal   float64
	rate     int
	bitDepth int
	channels int
	frames   int64
	closed   bool
}

// NewWAV creates the file at path and prepares a PCM encoder.
// bitDepth must be 16, 24 or 32; channels must be 1 or 2.
func NewWAV(path string, sampleRate, bitDepth, channels int) (*WAV, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, sampleRate)
	}
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		return nil, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, bitDepth)
	}
	if channels != monoChannels && channels != stereoChannels {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &WAV{
		file:    f,
		encoder: wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM),
		intBuf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		maxVal:   getMaxValue(bitDepth),
		rate:     sampleRate,
		bitDepth: bitDepth,
		channels: channels,
	}, nil
}

// Send encodes samples, clamped to [-1, 1]. It either writes the whole
// block or fails.
func (w *WAV) Send(samples []float32) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if len(samples) == 0 {
		return 0, nil
	}

	frames := samples
	if w.channels == stereoChannels {
		need := len(samples) * stereoChannels
		if cap(w.stereo) < need {
			w.stereo = make([]float32, need)
		}
		w.stereo = w.stereo[:need]
		simdops.Float32Ops().Interleave2(w.stereo, samples, samples)
		frames = w.stereo
	}

	if cap(w.intBuf.Data) < len(frames) {
		w.intBuf.Data = make([]int, len(frames))
	}
	w.intBuf.Data = w.intBuf.Data[:len(frames)]
	for i, s := range frames {
		w.intBuf.Data[i] = int(clamp(float64(s)) * w.maxVal)
	}

	if err := w.encoder.Write(w.intBuf); err != nil {
		return 0, fmt.Errorf("failed to write audio data: %w", err)
	}
	w.frames += int64(len(samples))
	return len(samples), nil
}

// SampleRate returns the file's sample rate.
func (w *WAV) SampleRate() int { return w.rate }

// Frames returns the number of sample frames written so far.
func (w *WAV) Frames() int64 { return w.frames }

// Close finalizes the WAV header and closes the file.
func (w *WAV) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return w.file.Close()
}
