// Package dsp provides the shared signal-processing primitives used by the
// synthesis engines and gain stages.
package dsp

// Phase constants.
const (
	TwoPi = 6.283185307179586
	Pi    = 3.141592653589793
)

// SoftClip applies a cubic soft-knee saturation curve. Inside [-1, 1] the
// curve is x*(1.5 - 0.5*x^2); outside it clamps to +/-1. The knee is smooth
// at the boundary, so there is no hard discontinuity at the clip point.
func SoftClip(x float32) float32 {
	if x < -1.0 {
		return -1.0
	}
	if x > 1.0 {
		return 1.0
	}
	return x * (1.5 - 0.5*x*x)
}

// SoftClipBuffer applies SoftClip in place.
func SoftClipBuffer(buf []float32) {
	for i := range buf {
		buf[i] = SoftClip(buf[i])
	}
}

// Crossfade linearly blends from a to b as mix goes from 0 to 1.
func Crossfade(a, b, mix float32) float32 {
	return a + (b-a)*mix
}

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
