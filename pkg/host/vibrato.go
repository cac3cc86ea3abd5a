package host

import (
	"math"

	"github.com/modsynth/engine/pkg/dsp"
	"github.com/modsynth/engine/pkg/graph"
	"github.com/modsynth/engine/pkg/param"
	"github.com/modsynth/engine/pkg/port"
)

// VibratoPlugin is a sine LFO whose output (in semitones) feeds another
// plugin's pitch input — the canonical cross-plugin wiring case. When its
// initial depth is zero it starts bypassed, so an unused vibrato costs no
// CPU from session start.
type VibratoPlugin struct {
	*Base
	unit   *lfoUnit
	target *graph.Input
}

type lfoUnit struct {
	out        *graph.Output
	sampleRate float64
	phase      float64

	rate  param.Atomic
	depth param.Atomic

	depthRamp param.Ramp
	lastDepth float32
}

// NewVibratoPlugin constructs a vibrato LFO. target, when non-nil, is the
// input the LFO connects itself to during Initialize.
func NewVibratoPlugin(uri string, blockSize int, sampleRate float64, target *graph.Input) *VibratoPlugin {
	u := &lfoUnit{
		out:        graph.NewOutput(blockSize),
		sampleRate: sampleRate,
	}

	v := &VibratoPlugin{
		Base: NewBase(Info{
			URI:     uri,
			Name:    "Vibrato",
			Author:  "modsynth",
			Version: "1.0.0",
		}),
		unit:   u,
		target: target,
	}

	v.BindFloat(port.ControlPort{
		Symbol: "rate", Name: "Rate", Default: 5, Min: 0.1, Max: 20,
	}, u.rate.Store, u.rate.Load)
	v.BindFloat(port.ControlPort{
		Symbol: "depth", Name: "Depth", Default: 0, Min: 0, Max: 2,
	}, u.depth.Store, u.depth.Load)

	v.AddAudioOut("out", "Out", u.out)

	return v
}

// Initialize implements Plugin: registers the unit and performs the static
// cross-plugin connect.
func (v *VibratoPlugin) Initialize(h *Host) {
	h.AddUnits(v, v.unit)
	if v.target != nil {
		v.unit.out.Connect(v.target)
	}
}

// ApplyInitialBypassState implements Plugin: zero depth means silence, so
// start disabled rather than render zeros forever.
func (v *VibratoPlugin) ApplyInitialBypassState(h *Host) {
	if v.unit.depth.Load() == 0 {
		h.SetPluginEnabled(v, false)
	}
}

// Unit exposes the underlying unit.
func (v *VibratoPlugin) Unit() graph.Unit { return v.unit }

func (u *lfoUnit) Out() *graph.Output { return u.out }

func (u *lfoUnit) Process(n int) {
	out := u.out.Buffer()[:n]
	inc := float64(u.rate.Load()) / u.sampleRate

	depth := u.depth.Load()
	u.depthRamp.Init(u.lastDepth, depth, n)
	u.lastDepth = depth

	for i := 0; i < n; i++ {
		out[i] = float32(math.Sin(dsp.TwoPi*u.phase)) * u.depthRamp.Next()
		u.phase += inc
		if u.phase >= 1 {
			u.phase -= 1
		}
	}
}
