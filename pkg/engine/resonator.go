package engine

import (
	"math"

	"github.com/modsynth/engine/pkg/dsp"
)

// MaxModes is the size of the resonator's filter bank: one state-variable
// bandpass per partial.
const MaxModes = 64

const burstLength = 24

// Resonator simulates resonant physical structures (plates, bars, strings)
// with a bank of bandpass filters. Harmonics sets the partial inharmonicity
// (structure), Timbre the brightness, Morph the damping. The odd partials go
// to out and the even partials to aux, giving the characteristic two-output
// split.
//
// The resonator applies its own decay: the ring-out of the filter bank is
// the envelope, so Render reports alreadyEnveloped.
type Resonator struct {
	modes      [MaxModes]dsp.SVF
	amplitudes [MaxModes]float32
	active     int
	resolution int

	// Position phase-modulates per-partial amplitude via a cosine sweep,
	// emulating the excitation point on the structure.
	position float32

	rng       dsp.Random
	burstLeft int
	burstGain float32
}

// Init sets up the resonator at full resolution.
func (r *Resonator) Init() {
	r.resolution = MaxModes
	r.position = 0.25
	r.rng = dsp.NewRandom(0x8d5a61)
	r.Reset()
}

// Reset clears the filter bank without releasing it.
func (r *Resonator) Reset() {
	for i := range r.modes {
		r.modes[i].Reset()
	}
	r.burstLeft = 0
}

// SetResolution sets how many of the modes are active, trading CPU for
// spectral density. Rounded down to an even count and clamped to the bank
// size.
func (r *Resonator) SetResolution(n int) {
	n -= n % 2
	if n < 2 {
		n = 2
	}
	if n > MaxModes {
		n = MaxModes
	}
	r.resolution = n
}

// SetPosition sets the excitation position in [0, 1].
func (r *Resonator) SetPosition(pos float32) {
	r.position = dsp.Clamp(pos, 0, 1)
}

// Render implements Engine.
func (r *Resonator) Render(p Parameters, out, aux []float32, n int) bool {
	f0 := NoteToFrequency(p.Note)
	structure := dsp.Clamp(p.Harmonics, 0, 1)
	brightness := dsp.Clamp(p.Timbre, 0, 1)
	damping := dsp.Clamp(p.Morph, 0, 1)

	// Four decades of Q from the damping control, up to the 500x ceiling,
	// further damped at extreme brightness/structure settings. Without the
	// safety term the bank self-oscillates at the top of the range.
	q := 500.0 * float32(math.Pow(10, 4.0*(float64(damping)-1.0)))
	q *= 1.0 - dsp.Clamp(brightness*0.4+structure*0.3, 0, 0.7)
	if q < 0.5 {
		q = 0.5
	}

	r.updateModes(f0, structure, brightness, q)

	if p.Trigger.Rising() {
		r.burstLeft = burstLength
		r.burstGain = 0.3 + 0.7*dsp.Clamp(p.Accent, 0, 1)
	}

	for i := 0; i < n; i++ {
		var ex float32
		if r.burstLeft > 0 {
			ex = r.rng.Bipolar() * r.burstGain
			r.burstLeft--
		}

		var odd, even float32
		for m := 0; m < r.active; m++ {
			y := r.modes[m].Bandpass(ex) * r.amplitudes[m]
			if m&1 == 0 {
				odd += y
			} else {
				even += y
			}
		}

		if aux != nil {
			out[i] = dsp.SoftClip(odd * 2.0)
			aux[i] = dsp.SoftClip(even * 2.0)
		} else {
			out[i] = dsp.SoftClip((odd + even) * 2.0)
		}
	}

	return true
}

// updateModes recomputes the per-partial frequencies, amplitudes and filter
// coefficients. Runs once per block.
func (r *Resonator) updateModes(f0, structure, brightness, q float32) {
	stiffness := stiffnessFromStructure(structure)

	// High partials lose amplitude faster as brightness goes down.
	att := 0.6 + 0.4*brightness

	stretch := float32(1.0)
	amp := float32(1.0)
	r.active = 0

	for m := 0; m < r.resolution; m++ {
		partial := f0 * stretch
		if partial >= dsp.MaxFrequency {
			break // Nyquist guard
		}

		sweep := 0.5 - 0.5*float32(math.Cos(float64(r.position)*dsp.Pi*float64(m+1)))
		r.amplitudes[m] = amp * (0.25 + 0.75*sweep)
		r.modes[m].SetFrequencyQ(partial, q)

		amp *= att
		stretch += stiffness
		if stiffness < 0 {
			// Negative stretch folds back toward harmonic spacing
			// instead of running away below zero.
			stiffness *= 0.93
		} else {
			stiffness *= 0.98
		}
		r.active = m + 1
	}
}

// stiffnessFromStructure maps structure in [0, 1] to a per-step stretch
// increment: sub-harmonic compression below 0.25, harmonic at 0.25, growing
// string/bar stretch above.
func stiffnessFromStructure(s float32) float32 {
	if s < 0.25 {
		return -0.15 * (0.25 - s) / 0.25
	}
	t := (s - 0.25) / 0.75
	return 0.4 * t * t
}
