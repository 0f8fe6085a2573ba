package lockstore

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/hupe1980/meshdist/codec"
	"github.com/hupe1980/meshdist/model"
)

// frameMagic opens a framed payload. It can never start a JSON document.
const frameMagic byte = 0xF7

// frameHeaderSize is [magic][codec id][compression].
const frameHeaderSize = 3

// ErrMalformed is returned by Decode for payloads that cannot be read.
var ErrMalformed = errors.New("lockstore: malformed locked selection")

// Encode serializes a selection.
//
// With a nil codec and CompressionNone the result is the plain JSON array
// hosts have always stored, so it stays readable by older readers. Any other
// combination produces a frame recording the codec and compression.
func Encode(sel model.LockedSelection, c codec.Codec, comp Compression) ([]byte, error) {
	if sel == nil {
		sel = model.LockedSelection{}
	}
	if c == nil && comp == CompressionNone {
		return codec.Default.Marshal(sel)
	}
	if c == nil {
		c = codec.Default
	}

	id, err := codec.IDOf(c)
	if err != nil {
		return nil, err
	}
	body, err := c.Marshal(sel)
	if err != nil {
		return nil, fmt.Errorf("lockstore: encode: %w", err)
	}
	body, err = compress(comp, body)
	if err != nil {
		return nil, fmt.Errorf("lockstore: compress: %w", err)
	}

	out := make([]byte, 0, frameHeaderSize+len(body))
	out = append(out, frameMagic, byte(id), byte(comp))
	return append(out, body...), nil
}

// Decode parses either a framed payload or a plain JSON array. Empty or
// whitespace-only input is an empty selection. Every failure wraps
// ErrMalformed.
func Decode(data []byte) (model.LockedSelection, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.LockedSelection{}, nil
	}

	c := codec.Default
	body := data
	if data[0] == frameMagic {
		if len(data) < frameHeaderSize {
			return nil, fmt.Errorf("%w: short frame", ErrMalformed)
		}
		var ok bool
		c, ok = codec.ByID(codec.ID(data[1]))
		if !ok {
			return nil, fmt.Errorf("%w: unknown codec %d", ErrMalformed, data[1])
		}
		var err error
		body, err = decompress(Compression(data[2]), data[frameHeaderSize:])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	var sel model.LockedSelection
	if err := c.Unmarshal(body, &sel); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if sel == nil {
		sel = model.LockedSelection{}
	}
	return sel, nil
}
