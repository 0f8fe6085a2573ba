// Package codec centralizes encoding of persisted documents: locked
// selections and scene files.
//
// Locked selections written by hosts are plain JSON strings, so every codec
// here must read and write standard JSON. The codec name is recorded in the
// lock store frame header so a payload can be decoded by the codec that
// wrote it.
package codec

import (
	"fmt"
	"io"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ID is the one-byte codec identifier stored in lock store frames.
type ID byte

const (
	// IDJSON identifies the standard-library codec.
	IDJSON ID = 1
	// IDGoJSON identifies the goccy/go-json codec.
	IDGoJSON ID = 2
)

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// ByID returns a built-in codec by its frame identifier.
func ByID(id ID) (Codec, bool) {
	switch id {
	case IDJSON:
		return JSON{}, true
	case IDGoJSON:
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// IDOf returns the frame identifier of a built-in codec.
func IDOf(c Codec) (ID, error) {
	switch c.Name() {
	case "json":
		return IDJSON, nil
	case "go-json":
		return IDGoJSON, nil
	default:
		return 0, fmt.Errorf("codec: %q has no frame identifier", c.Name())
	}
}

// DecodeReader reads all of r and unmarshals it into v.
// If c is nil, Default is used.
func DecodeReader(c Codec, r io.Reader, v any) error {
	if c == nil {
		c = Default
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := c.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	return nil
}

// MustMarshal is a helper for tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
