//go:build !portaudio

package audioout

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
)

type otoBackend struct {
	ctx    *oto.Context
	player *oto.Player
}

// Open starts pulling blocks from src and playing them on the default
// output device.
func Open(src Source, cfg Config) (Backend, error) {
	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("audioout: opening oto context: %w", err)
	}
	<-ready

	b := &otoBackend{ctx: ctx}
	b.player = ctx.NewPlayer(&blockReader{src: src})
	b.player.Play()
	logrus.WithFields(logrus.Fields{
		"backend":     "oto",
		"sample_rate": cfg.SampleRate,
		"block_size":  cfg.BlockSize,
	}).Info("audio output started")
	return b, nil
}

func (b *otoBackend) Close() error {
	return b.player.Close()
}

// blockReader adapts the pull-based Source to oto's io.Reader, encoding
// float32 little-endian and carrying partial blocks across Read calls.
type blockReader struct {
	src Source
	buf []byte
	off int
}

func (r *blockReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.off == len(r.buf) {
			block := r.src.RenderBlock()
			if cap(r.buf) < len(block)*4 {
				r.buf = make([]byte, len(block)*4)
			}
			r.buf = r.buf[:len(block)*4]
			for i, s := range block {
				binary.LittleEndian.PutUint32(r.buf[i*4:], math.Float32bits(s))
			}
			r.off = 0
		}
		c := copy(p[n:], r.buf[r.off:])
		r.off += c
		n += c
	}
	return n, nil
}
