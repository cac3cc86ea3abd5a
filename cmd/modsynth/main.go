// Command modsynth assembles a small demo graph — voice into drive with a
// vibrato LFO cross-wired to the voice's pitch input — and plays a short
// note sequence on the default audio device.
package main

import (
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/modsynth/engine/internal/audioout"
	"github.com/modsynth/engine/pkg/graph"
	"github.com/modsynth/engine/pkg/host"
	"github.com/modsynth/engine/pkg/port"
)

const (
	sampleRate = 48000
	blockSize  = 256

	voiceURI   = "com.modsynth.voice"
	driveURI   = "com.modsynth.drive"
	vibratoURI = "com.modsynth.vibrato"
)

func main() {
	engineName := flag.String("engine", "resonator", "synthesis engine: resonator, particle or fm_drum")
	drive := flag.Float64("drive", 0.5, "drive amount, 0..1")
	vibrato := flag.Float64("vibrato", 0.0, "vibrato depth in semitones, 0..2")
	seconds := flag.Int("seconds", 6, "playback duration")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	h := host.New(blockSize, sampleRate)

	voice := host.NewVoicePlugin(voiceURI, blockSize)
	dr := host.NewDrivePlugin(driveURI, blockSize)
	vib := host.NewVibratoPlugin(vibratoURI, blockSize, sampleRate, voice.AudioInputs()["pitch"])

	// Registration order is render order: LFO before the voice it
	// modulates, voice before the drive stage that consumes it.
	h.AddPlugin(vib)
	h.AddPlugin(voice)
	h.AddPlugin(dr)

	vib.SetPortValue("depth", port.Float(*vibrato))
	dr.SetPortValue("drive", port.Float(*drive))

	voice.AudioOutputs()["out"].Connect(dr.AudioInputs()["in"])

	h.Initialize()

	if !h.SetControl(port.ControlID{URI: voiceURI, Symbol: "engine"}, engineIndex(*engineName)) {
		logrus.WithField("engine", *engineName).Fatal("unknown engine")
	}

	src := &masterSource{h: h, out: dr.AudioOutputs()["out"], block: blockSize}
	backend, err := audioout.Open(src, audioout.Config{SampleRate: sampleRate, BlockSize: blockSize})
	if err != nil {
		logrus.WithError(err).Fatal("opening audio output")
	}
	defer backend.Close()

	h.Start()
	defer h.Stop()

	notes := []float32{48, 55, 60, 63, 67, 63, 60, 55}
	deadline := time.Now().Add(time.Duration(*seconds) * time.Second)
	for time.Now().Before(deadline) {
		for _, note := range notes {
			h.SetControl(port.ControlID{URI: voiceURI, Symbol: "note"}, port.Float(note))
			h.SetControl(port.ControlID{URI: voiceURI, Symbol: "gate"}, port.Bool(true))
			time.Sleep(220 * time.Millisecond)
			h.SetControl(port.ControlID{URI: voiceURI, Symbol: "gate"}, port.Bool(false))
			time.Sleep(80 * time.Millisecond)
			if !time.Now().Before(deadline) {
				break
			}
		}
	}
}

func engineIndex(name string) port.Int {
	switch name {
	case "particle":
		return 1
	case "fm_drum":
		return 2
	default:
		return 0
	}
}

// masterSource adapts the host's render loop to the backend's pull model:
// one Render per block, then hand over the final plugin's output buffer.
type masterSource struct {
	h     *host.Host
	out   *graph.Output
	block int
}

func (m *masterSource) RenderBlock() []float32 {
	m.h.Render(m.block)
	return m.out.Buffer()[:m.block]
}
