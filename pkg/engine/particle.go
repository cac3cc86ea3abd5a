package engine

import (
	"github.com/modsynth/engine/pkg/dsp"
)

// ParticleVoices is the number of independent particle voices.
const ParticleVoices = 6

const allpassGain = 0.6

var diffuserDelays = [4]int{126, 180, 269, 444}

// Particle synthesizes filtered stochastic impulse trains. Timbre sets the
// impulse density (squared response, finer control at low densities),
// Harmonics spreads the random per-voice center frequencies around the base
// note, and Morph is split: above 0.5 it raises the bandpass resonance,
// below 0.5 it raises the post-filter diffusion. The two never act at once.
type Particle struct {
	rng     dsp.Random
	voices  [ParticleVoices]dsp.SVF
	freqs   [ParticleVoices]float32
	qs      [ParticleVoices]float32
	impulse [ParticleVoices]float32

	// Fixed low-pass stage between the particle sum and the diffuser.
	lowpass dsp.SVF

	diffuser [4]allpass
}

type allpass struct {
	buf []float32
	idx int
}

func (a *allpass) process(x float32) float32 {
	d := a.buf[a.idx]
	y := -allpassGain*x + d
	a.buf[a.idx] = x + allpassGain*y
	a.idx++
	if a.idx == len(a.buf) {
		a.idx = 0
	}
	return y
}

func (a *allpass) clear() {
	for i := range a.buf {
		a.buf[i] = 0
	}
	a.idx = 0
}

// Init allocates the diffuser delay lines and seeds the generator.
func (p *Particle) Init() {
	p.rng = dsp.NewRandom(0x21e771)
	for i := range p.diffuser {
		p.diffuser[i].buf = make([]float32, diffuserDelays[i])
	}
	p.lowpass.SetFrequencyQ(0.1, 0.7)
	p.Reset()
}

// Reset clears filters and delay lines without releasing them.
func (p *Particle) Reset() {
	for i := range p.voices {
		p.voices[i].Reset()
		p.freqs[i] = 0
	}
	for i := range p.diffuser {
		if p.diffuser[i].buf != nil {
			p.diffuser[i].clear()
		}
	}
	p.lowpass.Reset()
}

// Render implements Engine. aux receives the raw particle sum before the
// low-pass and diffuser stages.
func (p *Particle) Render(params Parameters, out, aux []float32, n int) bool {
	f0 := NoteToFrequency(params.Note)
	timbre := dsp.Clamp(params.Timbre, 0, 1)
	density := timbre * timbre * 0.15
	spread := dsp.Clamp(params.Harmonics, 0, 1)
	morph := dsp.Clamp(params.Morph, 0, 1)

	// Morph splits into resonance above the midpoint and diffusion below;
	// one is always zero while the other is active.
	q := float32(1.0)
	diffusion := float32(0.0)
	if morph >= 0.5 {
		q = 1.0 + (morph-0.5)*38.0
	} else {
		diffusion = (0.5 - morph) * 2.0
	}

	// The low bit of the trigger state gates phase resync: while the gate
	// is high, every voice picks a fresh random center frequency.
	if params.Trigger.IsHigh() {
		for v := range p.voices {
			p.retune(v, f0, spread, q)
		}
	}

	gain := 0.4 + 0.6*dsp.Clamp(params.Accent, 0, 1)

	for i := 0; i < n; i++ {
		for v := range p.impulse {
			p.impulse[v] = 0
		}
		if p.rng.Float() < density {
			v := int(p.rng.Uint32() % ParticleVoices)
			p.retune(v, f0, spread, q)
			p.impulse[v] = gain * (0.3 + 0.7*p.rng.Float())
		}

		var sum float32
		for v := range p.voices {
			sum += p.voices[v].Bandpass(p.impulse[v]) * 4.0
		}

		if aux != nil {
			aux[i] = dsp.SoftClip(sum)
		}

		y := p.lowpass.Lowpass(sum)
		if diffusion > 0 {
			wet := y
			for d := range p.diffuser {
				wet = p.diffuser[d].process(wet)
			}
			y = dsp.Crossfade(y, wet, diffusion)
		}
		out[i] = dsp.SoftClip(y)
	}

	return false
}

// retune gives one voice a fresh random center frequency spread around the
// base note, up to two octaves each way at full spread.
func (p *Particle) retune(v int, f0, spread, q float32) {
	octaves := spread * 2.0 * p.rng.Bipolar()
	f := f0
	for octaves >= 1 {
		f *= 2
		octaves--
	}
	for octaves <= -1 {
		f *= 0.5
		octaves++
	}
	f *= 1.0 + octaves*0.693 // linearized fractional octave
	p.freqs[v] = dsp.Clamp(f, dsp.MinFrequency, dsp.MaxFrequency)
	p.qs[v] = q
	p.voices[v].SetFrequencyQ(p.freqs[v], q)
}
