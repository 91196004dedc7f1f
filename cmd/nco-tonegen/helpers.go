package main

import (
	"fmt"

	"github.com/tphakala/go-audio-nco/sink"
	"github.com/tphakala/go-audio-nco/sink/device"
)

// output is a sink that must be closed after rendering.
type output interface {
	Send(samples []float32) (int, error)
	SampleRate() int
	Close() error
	describe() string
}

type wavOutput struct {
	*sink.WAV
	path string
}

func (w wavOutput) describe() string { return "WAV " + w.path }

type deviceOutput struct {
	*device.Output
}

func (deviceOutput) describe() string { return "audio device" }

// openOutput opens a WAV file when path is set and the audio device otherwise.
func openOutput(path string, rate, bitDepth, channels int) (output, error) {
	if path != "" {
		w, err := sink.NewWAV(path, rate, bitDepth, channels)
		if err != nil {
			return nil, fmt.Errorf("failed to open WAV output: %w", err)
		}
		return wavOutput{WAV: w, path: path}, nil
	}

	d, err := device.New(rate)
	if err != nil {
		return nil, err
	}
	return deviceOutput{Output: d}, nil
}
