// Package audioout pulls rendered blocks from the engine host and hands
// them to the platform audio device. The default backend is oto (pure Go);
// build with -tags portaudio for the PortAudio backend.
package audioout

// Source supplies one block of mono samples per call. RenderBlock is called
// from the backend's audio goroutine at a fixed cadence; the returned slice
// is owned by the source and valid until the next call.
type Source interface {
	RenderBlock() []float32
}

// Config fixes the stream format.
type Config struct {
	SampleRate int
	BlockSize  int
}

// Backend is an open audio stream. Close stops playback and releases the
// device.
type Backend interface {
	Close() error
}
