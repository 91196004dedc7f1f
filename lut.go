package nco

import (
	"fmt"
	"math"
	"sync"
)

// SineLUT is a quantized sine table covering one full cycle in 2^bitDepth
// entries. It is immutable after construction and may be shared by any
// number of oscillators across goroutines.
type SineLUT struct {
	table    []float32
	mask     uint32
	bitDepth int
	shift    uint
}

// NewSineLUT builds a table of 2^bitDepth entries holding sin(2πk/length).
// Values are computed in float64 and stored as float32.
func NewSineLUT(bitDepth int) (*SineLUT, error) {
	if bitDepth < MinBitDepth || bitDepth > MaxBitDepth {
		return nil, fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidBitDepth, bitDepth, MinBitDepth, MaxBitDepth)
	}

	length := uint32(1) << bitDepth
	table := make([]float32, length)
	step := 2 * math.Pi / float64(length)
	for k := range table {
		table[k] = float32(math.Sin(step * float64(k)))
	}

	return &SineLUT{
		table:    table,
		mask:     length - 1,
		bitDepth: bitDepth,
		shift:    uint(accumulatorBits - bitDepth),
	}, nil
}

// MustSineLUT is like NewSineLUT but panics on an invalid bit depth.
// Intended for package-level tables whose depth is a constant.
func MustSineLUT(bitDepth int) *SineLUT {
	lut, err := NewSineLUT(bitDepth)
	if err != nil {
		panic(err)
	}
	return lut
}

// Lookup returns the table entry at i modulo the table length.
// It never fails.
func (l *SineLUT) Lookup(i uint32) float32 {
	return l.table[i&l.mask]
}

// Len returns the number of table entries.
func (l *SineLUT) Len() int { return len(l.table) }

// Mask returns Len()-1, the index wrap mask.
func (l *SineLUT) Mask() uint32 { return l.mask }

// BitDepth returns log2 of the table length.
func (l *SineLUT) BitDepth() int { return l.bitDepth }

// Shift returns the right shift that maps a 32-bit phase onto a table index.
func (l *SineLUT) Shift() uint { return l.shift }

// SizeBytes returns the memory held by the table entries.
func (l *SineLUT) SizeBytes() int { return len(l.table) * bytesPerFloat32 }

// Values returns a copy of the table.
func (l *SineLUT) Values() []float32 {
	out := make([]float32, len(l.table))
	copy(out, l.table)
	return out
}

const bytesPerFloat32 = 4

var (
	defaultLUT     *SineLUT
	defaultLUTOnce sync.Once
)

// DefaultLUT returns the process-wide table at DefaultBitDepth.
// It is built on first use.
func DefaultLUT() *SineLUT {
	defaultLUTOnce.Do(func() {
		defaultLUT = MustSineLUT(DefaultBitDepth)
	})
	return defaultLUT
}
