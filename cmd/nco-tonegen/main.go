// Command nco-tonegen plays or records a sine tone from a numerically
// controlled oscillator.
//
// Usage:
//
//	nco-tonegen -freq 440 -rate 48000 -duration 2           # play on the default device
//	nco-tonegen -freq 1000 -out tone.wav -depth 24           # write a 24-bit WAV file
//	nco-tonegen -freq 440 -bits 12 -block 512 -gain 0.5 -v   # larger table, quieter
//
// When the device runs at a different rate than requested, the oscillator
// is retuned so the tone keeps its pitch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	nco "github.com/tphakala/go-audio-nco"
)

const (
	// CLI defaults
	defaultDuration = 1.0
	defaultGain     = 1.0
	defaultPCMDepth = 16
	defaultChannels = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	freq := flag.Float64("freq", nco.DefaultFrequency, "Tone frequency in Hz")
	rate := flag.Int("rate", nco.DefaultSampleRate, "Requested sample rate in Hz")
	duration := flag.Float64("duration", defaultDuration, "Length in seconds")
	bits := flag.Int("bits", nco.DefaultBitDepth, "Lookup table bit depth (table has 2^bits entries)")
	block := flag.Int("block", nco.DefaultBlockSize, "Samples per block sent to the output")
	gain := flag.Float64("gain", defaultGain, "Output gain (0-1)")
	out := flag.String("out", "", "Write a WAV file instead of playing")
	depth := flag.Int("depth", defaultPCMDepth, "WAV PCM bit depth: 16, 24 or 32")
	channels := flag.Int("channels", defaultChannels, "WAV channel count: 1 or 2")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	cfg := nco.Config{
		Frequency:  *freq,
		SampleRate: float64(*rate),
		BitDepth:   *bits,
	}
	osc, lut, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("invalid oscillator settings: %w", err)
	}

	opts := nco.DefaultRenderOptions()
	opts.Duration = time.Duration(*duration * float64(time.Second))
	opts.BlockSize = *block
	opts.Gain = float32(*gain)
	if err := opts.Validate(); err != nil {
		return err
	}

	output, err := openOutput(*out, *rate, *depth, *channels)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Output: %s", output.describe())
		log.Printf("Table: %d entries (%d bytes)", lut.Len(), lut.SizeBytes())
		log.Printf("Requested: %.3f Hz at %d Hz", *freq, *rate)
		if got := output.SampleRate(); got != *rate {
			log.Printf("Device negotiated %d Hz", got)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	stats, renderErr := nco.Render(ctx, osc, output, opts)
	closeErr := output.Close()
	if renderErr != nil {
		return renderErr
	}
	if closeErr != nil {
		return closeErr
	}

	if *verbose {
		log.Printf("Increment: %d ticks/sample, actual frequency %.6f Hz (resolution %.3g Hz)",
			osc.DeltaPhase(), osc.ActualFrequency(), osc.Resolution())
		log.Printf("Short writes: %d", stats.ShortWrites)
	}
	fmt.Printf("Generated %d samples at %.0f Hz in %d blocks (%.2fs)\n",
		stats.Written, stats.SampleRate, stats.Blocks, time.Since(start).Seconds())

	return nil
}
