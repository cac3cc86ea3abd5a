package port

import "testing"

func TestControlIDRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		symbol string
	}{
		{"Plain", "com.modsynth.voice", "timbre"},
		{"URNStyle", "urn:modsynth:voice", "morph"},
		{"SingleChar", "v", "g"},
		{"Dotted", "com.modsynth.drive", "drive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ControlID{URI: tt.uri, Symbol: tt.symbol}
			parsed, ok := ParseControlID(id.String())
			if !ok {
				t.Fatalf("ParseControlID(%q) failed", id.String())
			}
			if parsed != id {
				t.Errorf("round trip = %+v, want %+v", parsed, id)
			}
		})
	}
}

// The serialized form splits on the last separator, so URIs containing ':'
// survive as long as symbols never do. This pins the convention.
func TestControlIDSplitsOnLastSeparator(t *testing.T) {
	id, ok := ParseControlID("urn:modsynth:voice:timbre")
	if !ok {
		t.Fatal("parse failed")
	}
	if id.URI != "urn:modsynth:voice" || id.Symbol != "timbre" {
		t.Errorf("got %+v, want uri=urn:modsynth:voice symbol=timbre", id)
	}
}

func TestControlIDInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"Empty", ""},
		{"NoSeparator", "timbre"},
		{"EmptyURI", ":timbre"},
		{"EmptySymbol", "com.modsynth.voice:"},
		{"OnlySeparator", ":"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ParseControlID(tt.in); ok {
				t.Errorf("ParseControlID(%q) succeeded, want failure", tt.in)
			}
		})
	}
}
