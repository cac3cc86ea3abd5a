// Package engine implements the synthesis engine family: a closed set of
// voices sharing one parameter-vector render contract. Engines operate on
// normalized frequency at a 48 kHz reference rate and never allocate inside
// Render.
package engine

import (
	"math"

	"github.com/modsynth/engine/pkg/dsp"
)

// RefSampleRate is the reference rate engine frequencies are normalized to.
const RefSampleRate = 48000.0

// TriggerState is a gate signal sampled once per block. The low-order bit
// encodes "gate is currently high".
type TriggerState int

// Trigger states.
const (
	TriggerLow            TriggerState = 0
	TriggerHigh           TriggerState = 1
	TriggerRisingEdge     TriggerState = 2 // edge seen, gate already back low
	TriggerRisingEdgeHigh TriggerState = 3 // edge seen, gate still high
	TriggerFallingEdge    TriggerState = 4
)

// IsHigh reports whether the gate is currently high.
func (t TriggerState) IsHigh() bool {
	return t&1 == 1
}

// Rising reports whether a rising edge was seen this block.
func (t TriggerState) Rising() bool {
	return t == TriggerRisingEdge || t == TriggerRisingEdgeHigh
}

// Parameters is the transient per-block parameter vector. It is constructed
// fresh for every render call and never stored by an engine.
type Parameters struct {
	Note      float32 // MIDI note number, fractional
	Timbre    float32 // [0, 1]
	Morph     float32 // [0, 1]
	Harmonics float32 // [0, 1]
	Accent    float32 // [0, 1]
	Trigger   TriggerState
}

// Engine is the render contract shared by the synthesis family.
type Engine interface {
	// Init performs one-time setup, including any buffer allocation.
	Init()

	// Reset clears internal state without releasing buffers. Called on
	// new-note and on mode switch.
	Reset()

	// Render fills out (and aux, when non-nil) with n samples. The return
	// value reports whether the engine already applied its own amplitude
	// envelope; when true the host skips its external envelope stage.
	Render(p Parameters, out, aux []float32, n int) bool
}

// Kind identifies one engine in the closed set.
type Kind int

// Engine kinds.
const (
	KindResonator Kind = iota
	KindParticle
	KindFMDrum

	NumKinds = 3
)

// String returns the engine's control-port option name.
func (k Kind) String() string {
	switch k {
	case KindResonator:
		return "resonator"
	case KindParticle:
		return "particle"
	case KindFMDrum:
		return "fm_drum"
	}
	return "unknown"
}

// OutGain returns the fixed per-engine scalar the host applies after render
// to balance perceived loudness across engine types.
func (k Kind) OutGain() float32 {
	switch k {
	case KindResonator:
		return 0.45
	case KindParticle:
		return 0.7
	case KindFMDrum:
		return 0.8
	}
	return 1.0
}

// New constructs an engine of the given kind. The set is closed; the switch
// is exhaustive.
func New(k Kind) Engine {
	switch k {
	case KindResonator:
		return &Resonator{}
	case KindParticle:
		return &Particle{}
	case KindFMDrum:
		return &FMDrum{}
	}
	return nil
}

// NoteToFrequency converts a MIDI note number to normalized frequency at the
// reference rate, clamped to the filter-stable range.
func NoteToFrequency(note float32) float32 {
	f := float32(440.0/RefSampleRate) * float32(math.Exp2(float64(note-69.0)/12.0))
	return dsp.Clamp(f, dsp.MinFrequency, dsp.MaxFrequency)
}
