package engine

import (
	"math"

	"github.com/modsynth/engine/pkg/dsp"
)

// FMDrum is a percussive self-FM voice. It owns its decay envelopes, so
// Render always reports alreadyEnveloped. The incoming note is compressed
// into a bass range: drum voices are tuned as low thumps, not melodic
// pitches. Triggering is sampled once per block; a rising edge fires the
// voice on the first sample of the block, sub-block timing is not supported.
type FMDrum struct {
	phase    float32
	modPhase float32
	prev     float32

	ampEnv   float32
	pitchEnv float32
	fmEnv    float32
}

// Init implements Engine.
func (d *FMDrum) Init() {
	d.Reset()
}

// Reset clears phases and envelopes.
func (d *FMDrum) Reset() {
	d.phase = 0
	d.modPhase = 0
	d.prev = 0
	d.ampEnv = 0
	d.pitchEnv = 0
	d.fmEnv = 0
}

// Render implements Engine. Timbre sets the FM depth, Morph the decay time,
// Harmonics the modulator ratio. aux receives the raw modulator, useful as a
// cross-modulation source.
func (d *FMDrum) Render(p Parameters, out, aux []float32, n int) bool {
	if p.Trigger.Rising() {
		d.ampEnv = 1
		d.pitchEnv = 1
		d.fmEnv = 1
	}

	// Compress the 36..96 note range by 4x toward the bass end.
	note := dsp.Clamp(p.Note, 36, 96)
	f0 := NoteToFrequency(36 + (note-36)*0.25)

	timbre := dsp.Clamp(p.Timbre, 0, 1)
	morph := dsp.Clamp(p.Morph, 0, 1)
	harmonics := dsp.Clamp(p.Harmonics, 0, 1)

	fmAmount := timbre * 1.5
	feedback := timbre * 0.25
	ratio := 1.0 + harmonics*6.0

	ampDecay := decayCoeff(0.04 + 0.46*morph)
	fmDecay := decayCoeff(0.02 + 0.10*morph)
	pitchDecay := decayCoeff(0.008)

	level := 0.4 + 0.6*dsp.Clamp(p.Accent, 0, 1)

	for i := 0; i < n; i++ {
		inc := f0 * (1.0 + 4.0*d.pitchEnv*d.pitchEnv)
		if inc > dsp.MaxFrequency {
			inc = dsp.MaxFrequency
		}

		d.modPhase += inc * ratio
		d.modPhase -= float32(int(d.modPhase))
		mod := float32(math.Sin(dsp.TwoPi * float64(d.modPhase)))

		d.phase += inc
		d.phase -= float32(int(d.phase))
		ph := float64(d.phase) + float64(fmAmount*d.fmEnv*mod) + float64(feedback*d.prev)
		y := float32(math.Sin(dsp.TwoPi * ph))
		d.prev = y

		out[i] = y * d.ampEnv * d.ampEnv * level
		if aux != nil {
			aux[i] = mod * d.fmEnv * level
		}

		d.ampEnv *= ampDecay
		d.fmEnv *= fmDecay
		d.pitchEnv *= pitchDecay
	}

	return true
}

// decayCoeff returns the per-sample multiplier for an exponential decay with
// the given time constant in seconds at the reference rate.
func decayCoeff(seconds float32) float32 {
	return float32(math.Exp(-1.0 / (RefSampleRate * float64(seconds))))
}
