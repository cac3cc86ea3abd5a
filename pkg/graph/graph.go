// Package graph provides the signal-graph primitives: output buffers with
// static fan-out, input slots with additive fan-in, and the unit contract.
//
// Wiring is established once at graph initialization and never changes
// during playback. Within one block all units execute in the fixed order
// they were registered with the host, so a downstream unit always observes
// the upstream unit's output from the same block.
package graph

import "github.com/modsynth/engine/pkg/param"

// Unit is the smallest owned piece of signal-processing state inside a
// plugin (oscillator, filter bank, envelope). A unit owns its internal state
// exclusively; no unit reads another unit's state except through connected
// ports.
type Unit interface {
	// Process renders n samples into the unit's output buffer. Called on
	// the audio thread; must not allocate, lock or block.
	Process(n int)

	// Out returns the unit's primary output.
	Out() *Output
}

// Output is a fan-out point owning the block buffer its unit renders into.
// One output may feed many inputs.
type Output struct {
	buf []float32
}

// NewOutput returns an output with a buffer for the given block size.
func NewOutput(blockSize int) *Output {
	return &Output{buf: make([]float32, blockSize)}
}

// Buffer returns the block buffer for the owning unit to write into.
func (o *Output) Buffer() []float32 {
	return o.buf
}

// Connect wires this output into an input. One-way, many-to-many; called
// during graph initialization only.
func (o *Output) Connect(in *Input) {
	in.sources = append(in.sources, o)
}

// Input is one input slot of one unit. It holds a constant scalar written by
// Set, plus zero or more upstream outputs; reads sum the constant and all
// connected sources (mixing semantics).
type Input struct {
	constant param.Atomic
	sources  []*Output
}

// NewInput returns an input holding the given constant.
func NewInput(initial float32) *Input {
	in := &Input{}
	in.constant.Store(initial)
	return in
}

// Set overwrites the constant part of the slot. Wait-free; safe from any
// thread. The new value takes effect no later than the next block.
func (in *Input) Set(v float32) {
	in.constant.Store(v)
}

// Constant returns the constant part of the slot.
func (in *Input) Constant() float32 {
	return in.constant.Load()
}

// DisconnectAll removes every connected source. Idempotent.
func (in *Input) DisconnectAll() {
	in.sources = in.sources[:0]
}

// Connected reports whether any source is wired in.
func (in *Input) Connected() bool {
	return len(in.sources) > 0
}

// At returns the slot value at sample i of the current block: the constant
// plus the sum of all connected sources at that sample.
func (in *Input) At(i int) float32 {
	v := in.constant.Load()
	for _, s := range in.sources {
		v += s.buf[i]
	}
	return v
}

// Value returns the slot value sampled once at the start of the block. Used
// for controls read at block rate (pitch offsets, triggers).
func (in *Input) Value() float32 {
	return in.At(0)
}
