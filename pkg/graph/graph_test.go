package graph

import "testing"

func TestInputConstant(t *testing.T) {
	in := NewInput(0.5)
	if got := in.Value(); got != 0.5 {
		t.Errorf("Value() = %f, want 0.5", got)
	}

	in.Set(-0.25)
	if got := in.Value(); got != -0.25 {
		t.Errorf("Value() after Set = %f, want -0.25", got)
	}
}

func TestFanInSums(t *testing.T) {
	a := NewOutput(4)
	b := NewOutput(4)
	for i := 0; i < 4; i++ {
		a.Buffer()[i] = 0.1 * float32(i)
		b.Buffer()[i] = 1.0
	}

	in := NewInput(0.5)
	a.Connect(in)
	b.Connect(in)

	// Multiple connections to one input mix additively, on top of the
	// constant.
	for i := 0; i < 4; i++ {
		want := 0.5 + 0.1*float32(i) + 1.0
		if got := in.At(i); got != want {
			t.Errorf("At(%d) = %f, want %f", i, got, want)
		}
	}
	if got := in.Value(); got != 1.5 {
		t.Errorf("Value() = %f, want 1.5", got)
	}
}

func TestFanOut(t *testing.T) {
	out := NewOutput(1)
	out.Buffer()[0] = 2.0

	a := NewInput(0)
	b := NewInput(0)
	out.Connect(a)
	out.Connect(b)

	if a.At(0) != 2.0 || b.At(0) != 2.0 {
		t.Errorf("fan-out values = %f, %f, want 2.0 each", a.At(0), b.At(0))
	}
}

func TestDisconnectAllIdempotent(t *testing.T) {
	out := NewOutput(1)
	out.Buffer()[0] = 1.0

	in := NewInput(0.5)
	out.Connect(in)
	if !in.Connected() {
		t.Fatal("expected connection")
	}

	in.DisconnectAll()
	in.DisconnectAll() // must never fail
	if in.Connected() {
		t.Error("still connected after DisconnectAll")
	}
	if got := in.Value(); got != 0.5 {
		t.Errorf("Value() after disconnect = %f, want constant 0.5", got)
	}
}
