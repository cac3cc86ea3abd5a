//go:build portaudio

package audioout

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"
)

type paBackend struct {
	stream *portaudio.Stream
}

// Open starts pulling blocks from src and playing them on the default
// output device via PortAudio.
func Open(src Source, cfg Config) (Backend, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audioout: initializing portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(cfg.SampleRate), cfg.BlockSize,
		func(out []float32) {
			copy(out, src.RenderBlock())
		})
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audioout: opening stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audioout: starting stream: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"backend":     "portaudio",
		"sample_rate": cfg.SampleRate,
		"block_size":  cfg.BlockSize,
	}).Info("audio output started")
	return &paBackend{stream: stream}, nil
}

func (b *paBackend) Close() error {
	err := b.stream.Stop()
	if cerr := b.stream.Close(); err == nil {
		err = cerr
	}
	portaudio.Terminate()
	return err
}
