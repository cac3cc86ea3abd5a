package host

import (
	"github.com/sirupsen/logrus"

	"github.com/modsynth/engine/pkg/graph"
	"github.com/modsynth/engine/pkg/port"
)

// Host owns the plugin graph and drives it one block at a time. Units
// execute in the fixed order they were registered, established once at
// initialization; graph wiring does not change at runtime.
//
// Render runs on the audio thread and never locks, logs or allocates.
// Everything else (lifecycle, control routing) runs on control threads.
type Host struct {
	blockSize   int
	sampleRate  float64
	entries     []*entry
	byURI       map[string]*entry
	initialized bool
	running     bool
	log         *logrus.Entry
}

type entry struct {
	plugin  Plugin
	units   []graph.Unit
	enabled bool
}

// New returns an empty host for the given block size and sample rate.
func New(blockSize int, sampleRate float64) *Host {
	return &Host{
		blockSize:  blockSize,
		sampleRate: sampleRate,
		byURI:      make(map[string]*entry),
		log:        logrus.WithField("component", "host"),
	}
}

// BlockSize returns the fixed block size.
func (h *Host) BlockSize() int { return h.blockSize }

// SampleRate returns the fixed sample rate.
func (h *Host) SampleRate() float64 { return h.sampleRate }

// AddPlugin registers a plugin with the host. Plugins render in
// registration order. Must be called before Initialize.
func (h *Host) AddPlugin(p Plugin) {
	e := &entry{plugin: p, enabled: true}
	h.entries = append(h.entries, e)
	h.byURI[p.Info().URI] = e
	h.log.WithFields(logrus.Fields{
		"uri":  p.Info().URI,
		"name": p.Info().Name,
	}).Info("plugin added")
}

// AddUnits registers a plugin's units for rendering, in topological order.
// Called by plugins from Initialize.
func (h *Host) AddUnits(p Plugin, units ...graph.Unit) {
	e, ok := h.byURI[p.Info().URI]
	if !ok {
		return
	}
	e.units = append(e.units, units...)
}

// Initialize runs one-time wiring: every plugin's Initialize, then its
// ApplyInitialBypassState. Called exactly once, after all plugins exist.
func (h *Host) Initialize() {
	if h.initialized {
		return
	}
	for _, e := range h.entries {
		e.plugin.Initialize(h)
	}
	for _, e := range h.entries {
		e.plugin.ApplyInitialBypassState(h)
	}
	h.initialized = true
	h.log.WithField("plugins", len(h.entries)).Info("graph initialized")
}

// SetPluginEnabled enables or disables a plugin. Disabled plugins are
// skipped entirely by Render — a zero-CPU bypass, not a mute. Plugins in a
// series signal path must implement dry-passthrough instead of relying on
// this.
func (h *Host) SetPluginEnabled(p Plugin, enabled bool) {
	e, ok := h.byURI[p.Info().URI]
	if !ok {
		return
	}
	e.enabled = enabled
	h.log.WithFields(logrus.Fields{
		"uri":     p.Info().URI,
		"enabled": enabled,
	}).Debug("plugin enable state changed")
}

// PluginEnabled reports the bypass state of a plugin.
func (h *Host) PluginEnabled(p Plugin) bool {
	e, ok := h.byURI[p.Info().URI]
	return ok && e.enabled
}

// Plugin looks a plugin up by URI.
func (h *Host) Plugin(uri string) (Plugin, bool) {
	e, ok := h.byURI[uri]
	if !ok {
		return nil, false
	}
	return e.plugin, true
}

// Start signals transport start to every plugin. Repeatable.
func (h *Host) Start() {
	if h.running {
		return
	}
	h.running = true
	for _, e := range h.entries {
		e.plugin.OnStart()
	}
	h.log.Info("transport started")
}

// Stop signals transport stop to every plugin. Repeatable.
func (h *Host) Stop() {
	if !h.running {
		return
	}
	h.running = false
	for _, e := range h.entries {
		e.plugin.OnStop()
	}
	h.log.Info("transport stopped")
}

// Render processes one block of n samples. Audio-thread entry point: units
// run in fixed order, disabled plugins cost nothing.
func (h *Host) Render(n int) {
	for _, e := range h.entries {
		if !e.enabled {
			continue
		}
		for _, u := range e.units {
			u.Process(n)
		}
		e.plugin.Run(n)
	}
}

// SetControl routes a typed value to a control port anywhere in the graph,
// addressed by plugin URI and symbol. Returns false, never an error, when
// the address is unknown — stale preset and MIDI-learn data is expected.
func (h *Host) SetControl(id port.ControlID, v port.Value) bool {
	e, ok := h.byURI[id.URI]
	if !ok {
		h.log.WithField("id", id.String()).Debug("control write to unknown plugin ignored")
		return false
	}
	if !e.plugin.SetPortValue(id.Symbol, v) {
		h.log.WithField("id", id.String()).Debug("control write to unknown port ignored")
		return false
	}
	return true
}

// GetControl reads a control port by address; ok follows the same quiet
// failure contract as SetControl.
func (h *Host) GetControl(id port.ControlID) (port.Value, bool) {
	e, ok := h.byURI[id.URI]
	if !ok {
		return nil, false
	}
	return e.plugin.GetPortValue(id.Symbol)
}
