package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Use it when a payload must round-trip through tooling that expects the
// exact output of encoding/json (for example hosts that diff stored
// locked-selection strings).
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
var Default Codec = GoJSON{}
