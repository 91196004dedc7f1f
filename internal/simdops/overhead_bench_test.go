package simdops

import (
	"testing"

	"github.com/tphakala/simd/f32"
)

// BenchmarkDirectF32Scale measures direct SIMD call overhead on an oscillator block.
func BenchmarkDirectF32Scale(b *testing.B) {
	a := make([]float32, 256)
	for i := range a {
		a[i] = float32(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		f32.Scale(a, a, 0.999)
	}
}

// BenchmarkIndirectF32Scale measures indirect call through Ops struct.
func BenchmarkIndirectF32Scale(b *testing.B) {
	ops := For[float32]()
	a := make([]float32, 256)
	for i := range a {
		a[i] = float32(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		ops.Scale(a, a, 0.999)
	}
}

// BenchmarkIndirectF32Interleave2 measures mono-to-stereo duplication.
func BenchmarkIndirectF32Interleave2(b *testing.B) {
	ops := Float32Ops()
	mono := make([]float32, 256)
	dst := make([]float32, 512)
	for i := range mono {
		mono[i] = float32(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		ops.Interleave2(dst, mono, mono)
	}
}

// BenchmarkEnergyF64 measures the dot-product energy helper.
func BenchmarkEnergyF64(b *testing.B) {
	a := make([]float64, 4096)
	for i := range a {
		a[i] = float64(i%7) * 0.1
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = Energy(a)
	}
}
