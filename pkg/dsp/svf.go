package dsp

import "math"

// Frequency bounds for filter coefficients, expressed as a fraction of the
// sample rate. The upper bound keeps tan() away from the Nyquist pole.
const (
	MinFrequency = 0.00001
	MaxFrequency = 0.49
)

// SVF is a single-channel state variable filter operating on normalized
// frequency (cycles per sample). Zero-delay feedback topology; the filter is
// passive and stays bounded for any positive Q.
type SVF struct {
	g float32 // frequency coefficient, tan(pi*f)
	r float32 // damping, 1/Q
	h float32 // feedback gain, 1/(1 + r*g + g*g)

	state1 float32
	state2 float32
}

// SetFrequencyQ sets the center frequency (normalized, clamped to the stable
// range) and resonance in one call. Coefficients are recomputed here, once
// per block, not per sample.
func (s *SVF) SetFrequencyQ(f, q float32) {
	f = Clamp(f, MinFrequency, MaxFrequency)
	if q < 0.01 {
		q = 0.01
	}
	s.g = float32(math.Tan(Pi * float64(f)))
	s.r = 1.0 / q
	s.h = 1.0 / (1.0 + s.r*s.g + s.g*s.g)
}

// Reset clears the integrator state without touching coefficients.
func (s *SVF) Reset() {
	s.state1 = 0
	s.state2 = 0
}

// Process advances the filter by one sample and returns the lowpass,
// bandpass and highpass outputs.
func (s *SVF) Process(in float32) (lp, bp, hp float32) {
	hp = (in - s.r*s.state1 - s.g*s.state1 - s.state2) * s.h
	bp = s.g*hp + s.state1
	s.state1 = s.g*hp + bp
	lp = s.g*bp + s.state2
	s.state2 = s.g*bp + lp
	return lp, bp, hp
}

// Bandpass advances the filter by one sample and returns the
// unity-peak-gain bandpass output (bp scaled by 1/Q), which keeps the peak
// response independent of resonance.
func (s *SVF) Bandpass(in float32) float32 {
	_, bp, _ := s.Process(in)
	return bp * s.r
}

// Lowpass advances the filter by one sample and returns the lowpass output.
func (s *SVF) Lowpass(in float32) float32 {
	lp, _, _ := s.Process(in)
	return lp
}
