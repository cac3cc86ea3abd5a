// Package host implements the plugin contract and the block scheduler that
// drives the signal graph.
package host

import (
	"github.com/modsynth/engine/pkg/dsp"
	"github.com/modsynth/engine/pkg/graph"
	"github.com/modsynth/engine/pkg/port"
)

// Info is the immutable identity of one plugin type. Created at
// construction, never mutated.
type Info struct {
	URI     string
	Name    string
	Author  string
	Version string
}

// Plugin is the contract every node in the graph implements. A plugin owns
// its units exclusively, declares its ports, and translates generic
// (symbol, value) writes into direct writes on its units' input slots.
type Plugin interface {
	Info() Info
	Ports() []port.Port

	// SetPortValue writes a control value by symbol. Returns false for an
	// unknown symbol or a mismatched value tag — callers treat false as
	// silently ignored, because presets and MIDI mappings legitimately
	// reference parameters from other plugin versions. Float values are
	// clamped to the port range, never rejected.
	SetPortValue(symbol string, v port.Value) bool

	// GetPortValue reads a control value by symbol; ok is false for an
	// unknown symbol.
	GetPortValue(symbol string) (port.Value, bool)

	// AudioInputs and AudioOutputs expose named slots for external graph
	// wiring.
	AudioInputs() map[string]*graph.Input
	AudioOutputs() map[string]*graph.Output

	// Initialize is called exactly once, after all plugins in the graph
	// exist, so cross-plugin wiring is possible. It registers the
	// plugin's units with the host and performs static connects.
	Initialize(h *Host)

	// Run performs plugin-level per-block work beyond what the owned
	// units already do. Most plugins leave this empty.
	Run(n int)

	// OnStart and OnStop follow the transport and may repeat.
	OnStart()
	OnStop()

	// ApplyInitialBypassState runs once after Initialize so a plugin
	// whose initial parameters imply silence starts disabled instead of
	// burning CPU from session start.
	ApplyInitialBypassState(h *Host)
}

// Base carries the port bookkeeping shared by all plugins: the declared
// port list, the symbol bindings, and the named audio slots. Concrete
// plugins embed it and register their ports at construction.
type Base struct {
	info     Info
	ports    []port.Port
	bindings map[string]binding
	ins      map[string]*graph.Input
	outs     map[string]*graph.Output
}

type binding interface {
	set(v port.Value) bool
	get() port.Value
}

// NewBase returns a Base with the given identity.
func NewBase(info Info) *Base {
	return &Base{
		info:     info,
		bindings: make(map[string]binding),
		ins:      make(map[string]*graph.Input),
		outs:     make(map[string]*graph.Output),
	}
}

// Info implements Plugin.
func (b *Base) Info() Info { return b.info }

// Ports implements Plugin.
func (b *Base) Ports() []port.Port { return b.ports }

// AudioInputs implements Plugin.
func (b *Base) AudioInputs() map[string]*graph.Input { return b.ins }

// AudioOutputs implements Plugin.
func (b *Base) AudioOutputs() map[string]*graph.Output { return b.outs }

// Run implements Plugin as a no-op.
func (b *Base) Run(int) {}

// OnStart implements Plugin as a no-op.
func (b *Base) OnStart() {}

// OnStop implements Plugin as a no-op.
func (b *Base) OnStop() {}

// ApplyInitialBypassState implements Plugin as a no-op.
func (b *Base) ApplyInitialBypassState(*Host) {}

// SetPortValue implements Plugin. See the interface doc for the quiet
// failure contract.
func (b *Base) SetPortValue(symbol string, v port.Value) bool {
	bd, ok := b.bindings[symbol]
	if !ok {
		return false
	}
	return bd.set(v)
}

// GetPortValue implements Plugin.
func (b *Base) GetPortValue(symbol string) (port.Value, bool) {
	bd, ok := b.bindings[symbol]
	if !ok {
		return nil, false
	}
	return bd.get(), true
}

// AddAudioIn declares a named audio input slot.
func (b *Base) AddAudioIn(symbol, name string, in *graph.Input) {
	b.ports = append(b.ports, port.AudioPort{
		Index: len(b.ports), Symbol: symbol, Name: name, IsInput: true,
	})
	b.ins[symbol] = in
}

// AddAudioOut declares a named audio output slot.
func (b *Base) AddAudioOut(symbol, name string, out *graph.Output) {
	b.ports = append(b.ports, port.AudioPort{
		Index: len(b.ports), Symbol: symbol, Name: name, IsInput: false,
	})
	b.outs[symbol] = out
}

// BindFloat declares a float control port. Writes are clamped to
// [p.Min, p.Max] before reaching store, so the audio thread never sees an
// out-of-range value.
func (b *Base) BindFloat(p port.ControlPort, store func(float32), load func() float32) {
	p.Index = len(b.ports)
	b.ports = append(b.ports, p)
	b.bindings[p.Symbol] = floatBinding{p: p, store: store, load: load}
	store(dsp.Clamp(p.Default, p.Min, p.Max))
}

// BindBool declares an on/off control port.
func (b *Base) BindBool(p port.ControlPort, store func(bool), load func() bool) {
	p.Index = len(b.ports)
	b.ports = append(b.ports, p)
	b.bindings[p.Symbol] = boolBinding{store: store, load: load}
	store(p.Default != 0)
}

// BindInt declares an enumerated int-choice control port; p.Options names
// the choices and writes are clamped to the option range.
func (b *Base) BindInt(p port.ControlPort, store func(int), load func() int) {
	p.Index = len(b.ports)
	if p.Max == 0 && len(p.Options) > 0 {
		p.Max = float32(len(p.Options) - 1)
	}
	b.ports = append(b.ports, p)
	b.bindings[p.Symbol] = intBinding{p: p, store: store, load: load}
	store(int(dsp.Clamp(p.Default, p.Min, p.Max)))
}

type floatBinding struct {
	p     port.ControlPort
	store func(float32)
	load  func() float32
}

func (fb floatBinding) set(v port.Value) bool {
	f, ok := v.(port.Float)
	if !ok {
		return false
	}
	fb.store(dsp.Clamp(float32(f), fb.p.Min, fb.p.Max))
	return true
}

func (fb floatBinding) get() port.Value { return port.Float(fb.load()) }

type boolBinding struct {
	store func(bool)
	load  func() bool
}

func (bb boolBinding) set(v port.Value) bool {
	bv, ok := v.(port.Bool)
	if !ok {
		return false
	}
	bb.store(bool(bv))
	return true
}

func (bb boolBinding) get() port.Value { return port.Bool(bb.load()) }

type intBinding struct {
	p     port.ControlPort
	store func(int)
	load  func() int
}

func (ib intBinding) set(v port.Value) bool {
	iv, ok := v.(port.Int)
	if !ok {
		return false
	}
	ib.store(int(dsp.Clamp(float32(iv), ib.p.Min, ib.p.Max)))
	return true
}

func (ib intBinding) get() port.Value { return port.Int(ib.load()) }
