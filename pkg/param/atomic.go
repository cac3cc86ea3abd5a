package param

import (
	"math"
	"sync/atomic"
)

// Atomic is a float32 cell written by control threads (UI, MIDI, automation)
// and read by the audio thread. Writes are single-word lock-free overwrites:
// there is no queue and no batching. A write is guaranteed to be observed no
// later than the start of the next processed block; writes arriving mid-block
// become visible from the following block.
type Atomic struct {
	bits atomic.Uint32
}

// Store overwrites the cell. Safe to call from any thread.
func (a *Atomic) Store(v float32) {
	a.bits.Store(math.Float32bits(v))
}

// Load returns the most recently stored value.
func (a *Atomic) Load() float32 {
	return math.Float32frombits(a.bits.Load())
}

// AtomicBool is the boolean counterpart of Atomic, used for gate inputs.
type AtomicBool struct {
	v atomic.Uint32
}

// Store overwrites the cell. Safe to call from any thread.
func (a *AtomicBool) Store(b bool) {
	if b {
		a.v.Store(1)
	} else {
		a.v.Store(0)
	}
}

// Load returns the most recently stored value.
func (a *AtomicBool) Load() bool {
	return a.v.Load() != 0
}

// AtomicInt is the integer counterpart of Atomic, used for enumerated
// controls such as engine selection.
type AtomicInt struct {
	v atomic.Int32
}

// Store overwrites the cell. Safe to call from any thread.
func (a *AtomicInt) Store(i int) {
	a.v.Store(int32(i))
}

// Load returns the most recently stored value.
func (a *AtomicInt) Load() int {
	return int(a.v.Load())
}
