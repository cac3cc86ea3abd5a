package dsp

import (
	"math"
	"testing"
)

func TestSVFImpulseBounded(t *testing.T) {
	// The filter is passive: even at high Q an impulse must ring, decay
	// and stay finite.
	qs := []float32{0.5, 1, 10, 100, 500}
	freqs := []float32{0.001, 0.01, 0.1, 0.4}

	for _, q := range qs {
		for _, f := range freqs {
			var s SVF
			s.SetFrequencyQ(f, q)

			in := float32(1.0)
			for i := 0; i < 100000; i++ {
				y := s.Bandpass(in)
				in = 0
				if math.IsNaN(float64(y)) || math.IsInf(float64(y), 0) {
					t.Fatalf("f=%f q=%f: non-finite output at %d", f, q, i)
				}
				if y > 4.0 || y < -4.0 {
					t.Fatalf("f=%f q=%f: output %f out of bounds at %d", f, q, y, i)
				}
			}
		}
	}
}

func TestSVFBandpassRingsAtHighQ(t *testing.T) {
	var s SVF
	s.SetFrequencyQ(0.05, 100)

	s.Bandpass(1.0)
	var energy float64
	for i := 0; i < 1000; i++ {
		y := s.Bandpass(0)
		energy += float64(y) * float64(y)
	}
	if energy == 0 {
		t.Error("high-Q bandpass did not ring after an impulse")
	}
}

func TestSVFFrequencyClamped(t *testing.T) {
	var s SVF
	// Out-of-range frequencies must be clamped, not rejected.
	s.SetFrequencyQ(2.0, 1)
	y := s.Bandpass(1.0)
	if math.IsNaN(float64(y)) || math.IsInf(float64(y), 0) {
		t.Errorf("clamped filter produced non-finite output %f", y)
	}
}

func TestSVFLowpassDC(t *testing.T) {
	var s SVF
	s.SetFrequencyQ(0.1, 0.707)

	var y float32
	for i := 0; i < 10000; i++ {
		y = s.Lowpass(1.0)
	}
	if math.Abs(float64(y)-1.0) > 0.01 {
		t.Errorf("lowpass DC gain = %f, want ~1.0", y)
	}
}

func TestSVFReset(t *testing.T) {
	var s SVF
	s.SetFrequencyQ(0.05, 10)
	s.Bandpass(1.0)
	s.Reset()

	if y := s.Bandpass(0); y != 0 {
		t.Errorf("output after Reset = %f, want 0", y)
	}
}
