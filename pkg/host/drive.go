package host

import (
	"github.com/modsynth/engine/pkg/dsp"
	"github.com/modsynth/engine/pkg/graph"
	"github.com/modsynth/engine/pkg/param"
	"github.com/modsynth/engine/pkg/port"
	"github.com/modsynth/engine/pkg/warp"
)

// DrivePlugin wraps the saturating modulation amplifier as a series effect.
// It sits in the signal path, so it must not rely on the host's generic
// bypass: at mix 0 it copies the dry signal through itself instead.
//
// Audio ports: "in", the driven "out", and "mod" — the gated, drive-scaled
// signal for downstream cross-modulation.
type DrivePlugin struct {
	*Base
	unit *driveUnit
}

type driveUnit struct {
	in  *graph.Input
	out *graph.Output
	mod *graph.Output

	amp   *warp.Amplifier
	drive param.Atomic
	mix   param.Atomic

	mixRamp param.Ramp
	lastMix float32
	inBuf   []float32
	wetBuf  []float32
}

// NewDrivePlugin constructs a drive stage with the given identity and block
// size.
func NewDrivePlugin(uri string, blockSize int) *DrivePlugin {
	u := &driveUnit{
		in:     graph.NewInput(0),
		out:    graph.NewOutput(blockSize),
		mod:    graph.NewOutput(blockSize),
		amp:    warp.New(),
		inBuf:  make([]float32, blockSize),
		wetBuf: make([]float32, blockSize),
	}

	d := &DrivePlugin{
		Base: NewBase(Info{
			URI:     uri,
			Name:    "Drive",
			Author:  "modsynth",
			Version: "1.0.0",
		}),
		unit: u,
	}

	d.BindFloat(port.ControlPort{
		Symbol: "drive", Name: "Drive", Default: 0.5, Min: 0, Max: 1,
	}, u.drive.Store, u.drive.Load)
	d.BindFloat(port.ControlPort{
		Symbol: "mix", Name: "Mix", Default: 1, Min: 0, Max: 1,
	}, u.mix.Store, u.mix.Load)

	d.AddAudioIn("in", "In", u.in)
	d.AddAudioOut("out", "Out", u.out)
	d.AddAudioOut("mod", "Mod", u.mod)

	return d
}

// Initialize implements Plugin.
func (d *DrivePlugin) Initialize(h *Host) {
	h.AddUnits(d, d.unit)
}

// Unit exposes the underlying unit.
func (d *DrivePlugin) Unit() graph.Unit { return d.unit }

func (u *driveUnit) Out() *graph.Output { return u.out }

func (u *driveUnit) Process(n int) {
	in := u.inBuf[:n]
	out := u.out.Buffer()[:n]
	mod := u.mod.Buffer()[:n]
	for i := 0; i < n; i++ {
		in[i] = u.in.At(i)
	}

	mix := u.mix.Load()
	if mix == 0 && u.lastMix == 0 {
		// Dry passthrough: the amp and its gate stay untouched, only the
		// copy costs anything.
		copy(out, in)
		for i := range mod {
			mod[i] = 0
		}
		return
	}

	wet := u.wetBuf[:n]
	u.amp.Process(in, wet, mod, u.drive.Load())

	u.mixRamp.Init(u.lastMix, mix, n)
	u.lastMix = mix
	for i := 0; i < n; i++ {
		out[i] = dsp.Crossfade(in[i], wet[i], u.mixRamp.Next())
	}
}
