package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-nco/sink"
)

func TestOpenOutput_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	out, err := openOutput(path, 48000, 16, 1)
	require.NoError(t, err)
	assert.Equal(t, 48000, out.SampleRate())
	assert.Equal(t, "WAV "+path, out.describe())

	n, err := out.Send([]float32{0, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, out.Close())
}

func TestOpenOutput_WAVInvalidDepth(t *testing.T) {
	_, err := openOutput(filepath.Join(t.TempDir(), "tone.wav"), 48000, 12, 1)
	require.ErrorIs(t, err, sink.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "failed to open WAV output")
}
