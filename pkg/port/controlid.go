package port

import "strings"

// ControlID addresses one control port anywhere in the graph: the owning
// plugin's URI paired with the port symbol. Serialized as "<uri>:<symbol>",
// it is the single cross-system handle used by presets, MIDI-learn mappings
// and external tools to name a parameter without compile-time plugin
// knowledge.
//
// Symbols must not contain ':'. URIs may (URN-style URIs are legal), so the
// serialized form is split on the last ':'.
type ControlID struct {
	URI    string
	Symbol string
}

// String returns the serialized "<uri>:<symbol>" form.
func (id ControlID) String() string {
	return id.URI + ":" + id.Symbol
}

// ParseControlID parses the serialized form. ok is false when the string has
// no separator, an empty URI or an empty symbol.
func ParseControlID(s string) (id ControlID, ok bool) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 || i == len(s)-1 {
		return ControlID{}, false
	}
	return ControlID{URI: s[:i], Symbol: s[i+1:]}, true
}
