package host

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modsynth/engine/pkg/engine"
	"github.com/modsynth/engine/pkg/port"
)

const testBlock = 256

func newTestVoice(t *testing.T) (*Host, *VoicePlugin) {
	t.Helper()
	h := New(testBlock, 48000)
	v := NewVoicePlugin("test.voice", testBlock)
	h.AddPlugin(v)
	h.Initialize()
	return h, v
}

func blockEnergy(buf []float32) float64 {
	var e float64
	for _, s := range buf {
		e += float64(s) * float64(s)
	}
	return e
}

func TestVoiceGateFiresEngine(t *testing.T) {
	h, v := newTestVoice(t)

	// Silent until gated.
	h.Render(testBlock)
	assert.Zero(t, blockEnergy(v.AudioOutputs()["out"].Buffer()))

	require.True(t, v.SetPortValue("gate", port.Bool(true)))
	h.Render(testBlock)
	assert.NotZero(t, blockEnergy(v.AudioOutputs()["out"].Buffer()))
}

func TestVoiceEngineSwitch(t *testing.T) {
	h, v := newTestVoice(t)

	for k := 0; k < engine.NumKinds; k++ {
		require.True(t, v.SetPortValue("engine", port.Int(k)))
		v.SetPortValue("gate", port.Bool(false))
		h.Render(testBlock)
		v.SetPortValue("gate", port.Bool(true))
		v.SetPortValue("timbre", port.Float(0.8))
		for b := 0; b < 10; b++ {
			h.Render(testBlock)
		}
		out := v.AudioOutputs()["out"].Buffer()
		for i := range out {
			if math.IsNaN(float64(out[i])) || math.IsInf(float64(out[i]), 0) {
				t.Fatalf("engine %d produced non-finite output", k)
			}
		}
	}
}

func TestVoiceLevelScalesOutput(t *testing.T) {
	h, v := newTestVoice(t)

	v.SetPortValue("gate", port.Bool(true))
	for b := 0; b < 5; b++ {
		h.Render(testBlock)
	}
	loud := blockEnergy(v.AudioOutputs()["out"].Buffer())

	require.True(t, v.SetPortValue("level", port.Float(0)))
	for b := 0; b < 5; b++ {
		h.Render(testBlock)
	}
	quiet := blockEnergy(v.AudioOutputs()["out"].Buffer())
	assert.Less(t, quiet, loud)
}

func TestVoicePitchInputShiftsNote(t *testing.T) {
	h := New(testBlock, 48000)
	v := NewVoicePlugin("test.voice", testBlock)
	vib := NewVibratoPlugin("test.vib", testBlock, 48000, v.AudioInputs()["pitch"])
	h.AddPlugin(vib)
	h.AddPlugin(v)
	h.Initialize()

	// Depth starts at zero, so the LFO begins bypassed; raising the depth
	// and re-enabling gives the voice a moving pitch input.
	assert.False(t, h.PluginEnabled(vib))
	vib.SetPortValue("depth", port.Float(1))
	h.SetPluginEnabled(vib, true)

	v.SetPortValue("gate", port.Bool(true))
	h.Render(testBlock)
	assert.True(t, v.AudioInputs()["pitch"].Connected())
}

func TestVoiceUnknownSymbolLeavesStateAlone(t *testing.T) {
	_, v := newTestVoice(t)

	before, ok := v.GetPortValue("timbre")
	require.True(t, ok)

	assert.False(t, v.SetPortValue("nonexistent", port.Float(1)))

	after, _ := v.GetPortValue("timbre")
	assert.Equal(t, before, after)
}

func TestTriggerStateDerivation(t *testing.T) {
	tests := []struct {
		prev, cur bool
		want      engine.TriggerState
	}{
		{false, false, engine.TriggerLow},
		{false, true, engine.TriggerRisingEdgeHigh},
		{true, true, engine.TriggerHigh},
		{true, false, engine.TriggerFallingEdge},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, triggerState(tt.prev, tt.cur))
	}
}
