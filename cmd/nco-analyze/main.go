// Command nco-analyze reports the dominant frequency of a WAV file.
//
// Usage:
//
//	nco-analyze tone.wav
//	nco-analyze -channel 1 -harmonics 5 -fundamental 440 stereo.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-audio-nco/analysis"
)

const (
	minRequiredArgs  = 1
	defaultHarmonics = 5

	minPCMBitDepth  = 8
	maxPCMBitDepth  = 32
	unsigned8Offset = 128
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	channel := flag.Int("channel", 0, "Channel to analyze (0-based)")
	harmonics := flag.Int("harmonics", defaultHarmonics, "Harmonics included in the distortion figure")
	fundamental := flag.Float64("fundamental", 0, "Fundamental for the distortion figure (default: measured peak)")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav\n\n", os.Args[0])
		flag.PrintDefaults()
		return errors.New("insufficient arguments")
	}

	samples, rate, err := readChannel(args[0], *channel)
	if err != nil {
		return err
	}

	peak, err := analysis.DominantFrequency(samples, float64(rate))
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", args[0], err)
	}

	f0 := *fundamental
	if f0 == 0 {
		f0 = peak
	}
	thd, err := analysis.HarmonicRatio(samples, float64(rate), f0, *harmonics)
	if err != nil {
		return fmt.Errorf("failed to measure distortion: %w", err)
	}

	fmt.Printf("%s\n", args[0])
	fmt.Printf("  %d Hz, %d samples (%.3fs)\n", rate, len(samples), float64(len(samples))/float64(rate))
	fmt.Printf("  Dominant frequency: %.3f Hz\n", peak)
	fmt.Printf("  RMS level: %.4f\n", analysis.RMS(samples))
	fmt.Printf("  Harmonic ratio (%d harmonics of %.3f Hz): %.6f\n", *harmonics, f0, thd)

	return nil
}

// readChannel decodes one channel of a PCM WAV file into [-1, 1] floats.
func readChannel(path string, channel int) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read audio data: %w", err)
	}

	return deinterleave(buf, channel, int(dec.BitDepth))
}

// deinterleave extracts one channel and normalizes it by the bit depth's full scale.
// 8-bit PCM is unsigned and centered on 128; wider depths are signed.
func deinterleave(buf *audio.IntBuffer, channel, bitDepth int) ([]float32, int, error) {
	if bitDepth < minPCMBitDepth || bitDepth > maxPCMBitDepth {
		return nil, 0, fmt.Errorf("unsupported PCM bit depth %d", bitDepth)
	}
	channels := buf.Format.NumChannels
	if channel < 0 || channel >= channels {
		return nil, 0, fmt.Errorf("channel %d out of range (file has %d)", channel, channels)
	}

	offset := 0
	if bitDepth == minPCMBitDepth {
		offset = unsigned8Offset
	}
	invMax := 1.0 / float64(int64(1)<<(bitDepth-1)-1)
	frames := len(buf.Data) / channels
	out := make([]float32, frames)
	for i := range frames {
		out[i] = float32(float64(buf.Data[i*channels+channel]-offset) * invMax)
	}
	return out, buf.Format.SampleRate, nil
}
