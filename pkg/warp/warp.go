// Package warp implements the saturating modulation amplifier used by
// cross-modulation and distortion plugins: an adaptive noise gate followed
// by drive-dependent soft-clip gain staging.
package warp

import (
	"github.com/modsynth/engine/pkg/dsp"
	"github.com/modsynth/engine/pkg/param"
)

// Gate follower coefficients: fast attack on rising energy, slow release.
const (
	gateAttack  = 0.1
	gateRelease = 0.0001
	gateScale   = 1000.0
)

// Amplifier is one channel of gated, overdriven gain staging. Drive changes
// are ramped across the block; instantaneous jumps are audibly worse here
// than in plain gain stages because the saturation amplifies them.
type Amplifier struct {
	level     float32 // one-pole follower on squared signal energy
	driveRamp param.Ramp
	lastDrive float32
}

// New returns an amplifier with a cold gate.
func New() *Amplifier {
	return &Amplifier{}
}

// Reset clears the gate follower and the drive ramp origin.
func (a *Amplifier) Reset() {
	a.level = 0
	a.lastDrive = 0
}

// Process renders one block. out receives the driven signal and aux, when
// non-nil, the drive-scaled gated signal for downstream cross-modulation.
// drive is the block target in [0, 1]; the ramp starts from the previous
// block's endpoint.
func (a *Amplifier) Process(in, out, aux []float32, drive float32) {
	n := len(in)
	drive = dsp.Clamp(drive, 0, 1)
	a.driveRamp.Init(a.lastDrive, drive, n)
	a.lastDrive = drive

	for i := 0; i < n; i++ {
		d := a.driveRamp.Next()
		x := in[i]

		// Adaptive gate: asymmetric follower on x^2 silences near-zero
		// input without chattering on normal levels.
		err := x*x - a.level
		if err > 0 {
			a.level += gateAttack * err
		} else {
			a.level += gateRelease * err
		}
		g := a.level * gateScale
		if g > 1 {
			g = 1
		}
		gated := x * g

		if aux != nil {
			aux[i] = gated * d
		}

		out[i] = overdrive(gated, d)
	}
}

// overdrive applies the drive-dependent gain staging. preGain blends from a
// linear half-gain toward a steep polynomial as drive rises; postGain
// normalizes against the soft-clipped reference level so perceived loudness
// stays roughly constant across the drive range.
func overdrive(x, drive float32) float32 {
	d2 := drive * drive
	pre := dsp.Crossfade(drive*0.5, d2*d2*drive*24.0, d2)
	squashed := drive * (2.0 - drive)
	post := 1.0 / dsp.SoftClip(0.33+squashed*(pre-0.33))
	return dsp.SoftClip(x*pre) * post
}
