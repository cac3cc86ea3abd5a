package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modsynth/engine/pkg/graph"
	"github.com/modsynth/engine/pkg/port"
)

func newTestBase() (*Base, *float32, *bool, *int) {
	b := NewBase(Info{URI: "test.base", Name: "Base", Author: "test", Version: "0"})

	var f float32
	var on bool
	var choice int

	b.BindFloat(port.ControlPort{Symbol: "drive", Name: "Drive", Default: 0.5, Min: 0, Max: 1},
		func(v float32) { f = v }, func() float32 { return f })
	b.BindBool(port.ControlPort{Symbol: "bypass", Name: "Bypass"},
		func(v bool) { on = v }, func() bool { return on })
	b.BindInt(port.ControlPort{Symbol: "mode", Name: "Mode", Options: []string{"a", "b", "c"}},
		func(v int) { choice = v }, func() int { return choice })

	return b, &f, &on, &choice
}

func TestBaseDefaultsApplied(t *testing.T) {
	_, f, on, choice := newTestBase()
	assert.Equal(t, float32(0.5), *f)
	assert.False(t, *on)
	assert.Equal(t, 0, *choice)
}

func TestBaseUnknownSymbol(t *testing.T) {
	b, f, _, _ := newTestBase()

	// Unknown symbols are silently ignored and leave all state unchanged.
	assert.False(t, b.SetPortValue("nonexistent", port.Float(1)))
	assert.Equal(t, float32(0.5), *f)

	v, ok := b.GetPortValue("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestBaseTagMismatch(t *testing.T) {
	b, f, on, _ := newTestBase()

	assert.False(t, b.SetPortValue("drive", port.Bool(true)))
	assert.False(t, b.SetPortValue("drive", port.Int(1)))
	assert.False(t, b.SetPortValue("bypass", port.Float(1)))
	assert.Equal(t, float32(0.5), *f)
	assert.False(t, *on)
}

func TestBaseFloatClamped(t *testing.T) {
	b, f, _, _ := newTestBase()

	// Out-of-range values are clamped, never rejected.
	require.True(t, b.SetPortValue("drive", port.Float(2.5)))
	assert.Equal(t, float32(1.0), *f)

	require.True(t, b.SetPortValue("drive", port.Float(-3)))
	assert.Equal(t, float32(0.0), *f)
}

func TestBaseIntChoiceClamped(t *testing.T) {
	b, _, _, choice := newTestBase()

	require.True(t, b.SetPortValue("mode", port.Int(2)))
	assert.Equal(t, 2, *choice)

	require.True(t, b.SetPortValue("mode", port.Int(99)))
	assert.Equal(t, 2, *choice, "choice index clamps to the option range")

	require.True(t, b.SetPortValue("mode", port.Int(-1)))
	assert.Equal(t, 0, *choice)
}

func TestBaseGetPortValue(t *testing.T) {
	b, _, _, _ := newTestBase()

	require.True(t, b.SetPortValue("drive", port.Float(0.7)))
	v, ok := b.GetPortValue("drive")
	require.True(t, ok)
	assert.InDelta(t, 0.7, float64(v.(port.Float)), 1e-6)

	require.True(t, b.SetPortValue("bypass", port.Bool(true)))
	bv, ok := b.GetPortValue("bypass")
	require.True(t, ok)
	assert.Equal(t, port.Bool(true), bv)
}

func TestBasePortEnumeration(t *testing.T) {
	b, _, _, _ := newTestBase()
	b.AddAudioIn("in", "In", graph.NewInput(0))
	b.AddAudioOut("out", "Out", graph.NewOutput(8))

	ports := b.Ports()
	require.Len(t, ports, 5)
	for i, p := range ports {
		assert.Equal(t, i, p.PortIndex())
	}

	// The enumerated control carries its option labels for UI and tool
	// introspection.
	mode := ports[2].(port.ControlPort)
	assert.Equal(t, []string{"a", "b", "c"}, mode.Options)
	assert.Equal(t, float32(2), mode.Max)

	assert.NotNil(t, b.AudioInputs()["in"])
	assert.NotNil(t, b.AudioOutputs()["out"])
}
