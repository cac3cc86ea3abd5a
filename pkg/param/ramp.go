// Package param implements parameter delivery between control threads and
// the audio callback: a wait-free scalar slot and a per-block linear ramp.
package param

// Ramp spreads a parameter change linearly across one block so the change is
// inaudible as a discontinuity. After Init(from, to, size), Next must be
// called exactly size times; the size-th call returns to (within float
// epsilon). The first call returns from + step: from itself is the value the
// previous block already ended on.
//
// A Ramp holds only the current value and the step, and never allocates.
type Ramp struct {
	value float32
	step  float32
}

// Init prepares the ramp to travel from from to to over size calls.
func (r *Ramp) Init(from, to float32, size int) {
	if size <= 0 {
		r.value = to
		r.step = 0
		return
	}
	r.value = from
	r.step = (to - from) / float32(size)
}

// Next returns the next value on the ramp.
func (r *Ramp) Next() float32 {
	r.value += r.step
	return r.value
}
