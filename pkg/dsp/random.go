package dsp

// Random is a small xorshift generator for stochastic excitation. The global
// math/rand source takes a lock, which the render path cannot afford, so the
// engines carry their own state.
type Random struct {
	state uint32
}

// NewRandom returns a generator seeded with the given value. A zero seed is
// remapped because xorshift has a fixed point at zero.
func NewRandom(seed uint32) Random {
	if seed == 0 {
		seed = 0x9e3779b9
	}
	return Random{state: seed}
}

// Uint32 returns the next raw 32-bit value.
func (r *Random) Uint32() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float returns a uniform sample in [0, 1).
func (r *Random) Float() float32 {
	return float32(r.Uint32()>>8) * (1.0 / 16777216.0)
}

// Bipolar returns a uniform sample in [-1, 1).
func (r *Random) Bipolar() float32 {
	return r.Float()*2.0 - 1.0
}
