// Package port defines the typed control protocol shared by every external
// actor (UI, MIDI mapping, preset loader, tool dispatch): port descriptors,
// tagged control values and the global control addressing scheme.
package port

// Value is the tagged union carried over the control protocol. It carries no
// unit metadata; range and validity are enforced by the owning port.
type Value interface {
	value()
}

// Float is a continuous control value.
type Float float32

// Bool is an on/off control value, used for gates and switches.
type Bool bool

// Int is a discrete control value, used for enumerated choices.
type Int int

func (Float) value() {}
func (Bool) value()  {}
func (Int) value()   {}

// Port describes one named, typed connection point on a plugin. The set of
// implementations is closed: AudioPort and ControlPort.
type Port interface {
	PortIndex() int
	PortSymbol() string
	PortName() string
}

// AudioPort describes a streaming audio connection point.
type AudioPort struct {
	Index   int
	Symbol  string
	Name    string
	IsInput bool
}

// PortIndex returns the position of the port in the plugin's port list.
func (p AudioPort) PortIndex() int { return p.Index }

// PortSymbol returns the short identifier, unique within the plugin.
func (p AudioPort) PortSymbol() string { return p.Symbol }

// PortName returns the human-readable name.
func (p AudioPort) PortName() string { return p.Name }

// ControlPort describes a parameter. Options is populated only for
// enumerated int-choice controls; for those, Min and Max bound the index.
type ControlPort struct {
	Index   int
	Symbol  string
	Name    string
	Default float32
	Min     float32
	Max     float32
	Options []string
}

// PortIndex returns the position of the port in the plugin's port list.
func (p ControlPort) PortIndex() int { return p.Index }

// PortSymbol returns the short identifier, unique within the plugin.
func (p ControlPort) PortSymbol() string { return p.Symbol }

// PortName returns the human-readable name.
func (p ControlPort) PortName() string { return p.Name }
