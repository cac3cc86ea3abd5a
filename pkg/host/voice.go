package host

import (
	"github.com/modsynth/engine/pkg/engine"
	"github.com/modsynth/engine/pkg/graph"
	"github.com/modsynth/engine/pkg/param"
	"github.com/modsynth/engine/pkg/port"
)

// VoicePlugin hosts one synthesis-engine unit. The engine is selectable at
// runtime through the "engine" choice port; switching resets the incoming
// engine's buffers. A fallback exponential envelope is applied when the
// active engine does not envelope its own output.
//
// Audio ports: "out" and "aux" outputs, and a "pitch" input summed into the
// note (in semitones) for cross-plugin vibrato wiring.
type VoicePlugin struct {
	*Base
	unit *voiceUnit
}

type voiceUnit struct {
	out   *graph.Output
	aux   *graph.Output
	pitch *graph.Input

	engines  [engine.NumKinds]engine.Engine
	kind     param.AtomicInt
	lastKind int

	note      param.Atomic
	timbre    param.Atomic
	morph     param.Atomic
	harmonics param.Atomic
	accent    param.Atomic
	level     param.Atomic
	gate      param.AtomicBool

	prevGate  bool
	env       float32
	levelRamp param.Ramp
	lastLevel float32
}

// NewVoicePlugin constructs a voice with the given identity and block size.
func NewVoicePlugin(uri string, blockSize int) *VoicePlugin {
	u := &voiceUnit{
		out:   graph.NewOutput(blockSize),
		aux:   graph.NewOutput(blockSize),
		pitch: graph.NewInput(0),
	}
	for k := 0; k < engine.NumKinds; k++ {
		u.engines[k] = engine.New(engine.Kind(k))
		u.engines[k].Init()
	}

	v := &VoicePlugin{
		Base: NewBase(Info{
			URI:     uri,
			Name:    "Voice",
			Author:  "modsynth",
			Version: "1.0.0",
		}),
		unit: u,
	}

	options := make([]string, engine.NumKinds)
	for k := 0; k < engine.NumKinds; k++ {
		options[k] = engine.Kind(k).String()
	}
	v.BindInt(port.ControlPort{
		Symbol: "engine", Name: "Engine", Options: options,
	}, u.kind.Store, u.kind.Load)

	v.BindFloat(port.ControlPort{
		Symbol: "note", Name: "Note", Default: 48, Min: 12, Max: 96,
	}, u.note.Store, u.note.Load)
	v.BindFloat(port.ControlPort{
		Symbol: "timbre", Name: "Timbre", Default: 0.5, Min: 0, Max: 1,
	}, u.timbre.Store, u.timbre.Load)
	v.BindFloat(port.ControlPort{
		Symbol: "morph", Name: "Morph", Default: 0.5, Min: 0, Max: 1,
	}, u.morph.Store, u.morph.Load)
	v.BindFloat(port.ControlPort{
		Symbol: "harmonics", Name: "Harmonics", Default: 0.5, Min: 0, Max: 1,
	}, u.harmonics.Store, u.harmonics.Load)
	v.BindFloat(port.ControlPort{
		Symbol: "accent", Name: "Accent", Default: 0.8, Min: 0, Max: 1,
	}, u.accent.Store, u.accent.Load)
	v.BindFloat(port.ControlPort{
		Symbol: "level", Name: "Level", Default: 0.8, Min: 0, Max: 1,
	}, u.level.Store, u.level.Load)
	v.BindBool(port.ControlPort{
		Symbol: "gate", Name: "Gate",
	}, u.gate.Store, u.gate.Load)

	v.AddAudioIn("pitch", "Pitch Mod", u.pitch)
	v.AddAudioOut("out", "Out", u.out)
	v.AddAudioOut("aux", "Aux", u.aux)

	return v
}

// Initialize implements Plugin.
func (v *VoicePlugin) Initialize(h *Host) {
	h.AddUnits(v, v.unit)
}

// Unit exposes the underlying unit.
func (v *VoicePlugin) Unit() graph.Unit { return v.unit }

// Envelope constants for the fallback stage: short attack, 200 ms decay at
// the reference rate.
const (
	envAttack = 0.01
	envDecay  = 0.999896
)

func (u *voiceUnit) Out() *graph.Output { return u.out }

func (u *voiceUnit) Process(n int) {
	k := engine.Kind(u.kind.Load())
	if int(k) != u.lastKind {
		u.engines[k].Reset()
		u.lastKind = int(k)
		u.env = 0
	}

	gate := u.gate.Load()
	trig := triggerState(u.prevGate, gate)
	u.prevGate = gate

	p := engine.Parameters{
		Note:      u.note.Load() + u.pitch.Value(),
		Timbre:    u.timbre.Load(),
		Morph:     u.morph.Load(),
		Harmonics: u.harmonics.Load(),
		Accent:    u.accent.Load(),
		Trigger:   trig,
	}

	out := u.out.Buffer()[:n]
	aux := u.aux.Buffer()[:n]
	enveloped := u.engines[k].Render(p, out, aux, n)

	// Per-engine loudness balance, applied after render, ramped together
	// with the level control.
	target := u.level.Load() * k.OutGain()
	u.levelRamp.Init(u.lastLevel, target, n)
	u.lastLevel = target

	if enveloped {
		for i := 0; i < n; i++ {
			lv := u.levelRamp.Next()
			out[i] *= lv
			aux[i] *= lv
		}
		return
	}
	for i := 0; i < n; i++ {
		lv := u.levelRamp.Next()
		if gate {
			u.env += (1.0 - u.env) * envAttack
		} else {
			u.env *= envDecay
		}
		g := lv * u.env
		out[i] *= g
		aux[i] *= g
	}
}

// triggerState derives the per-block trigger from the previous and current
// gate. The gate is sampled once per block; sub-block pulses collapse to
// edge states.
func triggerState(prev, cur bool) engine.TriggerState {
	switch {
	case cur && !prev:
		return engine.TriggerRisingEdgeHigh
	case !cur && prev:
		return engine.TriggerFallingEdge
	case cur:
		return engine.TriggerHigh
	default:
		return engine.TriggerLow
	}
}
