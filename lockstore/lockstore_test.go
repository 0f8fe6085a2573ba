package lockstore

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/hupe1980/meshdist/codec"
	"github.com/hupe1980/meshdist/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSelection() model.LockedSelection {
	return model.LockedSelection{
		{Mesh: "Cube", Vertices: []int{0, 2, 4}},
		{Mesh: "Sphere", Vertices: []int{17}},
	}
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name  string
		codec codec.Codec
		comp  Compression
	}{
		{"plain", nil, CompressionNone},
		{"json-framed", codec.JSON{}, CompressionNone},
		{"go-json-lz4", codec.GoJSON{}, CompressionLZ4},
		{"json-zstd", codec.JSON{}, CompressionZstd},
		{"default-zstd", nil, CompressionZstd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(sampleSelection(), tt.codec, tt.comp)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, sampleSelection(), got)
		})
	}
}

func TestEncode_PlainIsHostFormat(t *testing.T) {
	data, err := Encode(model.LockedSelection{{Mesh: "Cube", Vertices: []int{1, 2}}}, nil, CompressionNone)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"obj":"Cube","verts":[1,2]}]`, string(data))

	data, err = Encode(nil, nil, CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestEncode_LargeSelectionCompresses(t *testing.T) {
	run := make([]int, 50)
	for i := range run {
		run[i] = i
	}
	sel := make(model.LockedSelection, 200)
	for i := range sel {
		sel[i] = model.LockEntry{Mesh: "Grid", Vertices: run}
	}

	plain, err := Encode(sel, nil, CompressionNone)
	require.NoError(t, err)

	for _, comp := range []Compression{CompressionLZ4, CompressionZstd} {
		t.Run(comp.String(), func(t *testing.T) {
			data, err := Encode(sel, nil, comp)
			require.NoError(t, err)
			assert.Less(t, len(data), len(plain))

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, sel, got)
		})
	}
}

func TestCompress_IncompressibleStoredRaw(t *testing.T) {
	data := make([]byte, 4096)
	_, _ = rand.NewChaCha8([32]byte{1}).Read(data)

	for _, comp := range []Compression{CompressionLZ4, CompressionZstd} {
		t.Run(comp.String(), func(t *testing.T) {
			block, err := compress(comp, data)
			require.NoError(t, err)
			require.Len(t, block, blockHeaderSize+len(data))
			assert.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(block[0:4]))
			assert.Zero(t, binary.LittleEndian.Uint32(block[4:8]))

			got, err := decompress(comp, block)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	framed, err := Encode(sampleSelection(), codec.JSON{}, CompressionZstd)
	require.NoError(t, err)

	tests := map[string][]byte{
		"garbage":         []byte("not json"),
		"wrong shape":     []byte(`{"obj":"Cube"}`),
		"bad index type":  []byte(`[{"obj":"Cube","verts":["a"]}]`),
		"short frame":     {frameMagic, 1},
		"unknown codec":   {frameMagic, 99, 0, '[', ']'},
		"truncated block": framed[:len(framed)-3],
		"bad compression": {frameMagic, byte(codec.IDJSON), 42, 0, 0, 0, 0, 0, 0, 0, 0},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(data)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	for _, in := range []string{"", "  \n", "[]", "null"} {
		got, err := Decode([]byte(in))
		require.NoError(t, err, "input %q", in)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		sel, err := Load(ctx, NewMemoryStore(), DefaultKey)
		require.NoError(t, err)
		assert.Empty(t, sel)
	})

	t.Run("malformed payload recovers", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put(ctx, DefaultKey, []byte("{{{")))

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		sel, err := Load(ctx, s, DefaultKey, WithLogger(logger))
		require.NoError(t, err)
		assert.Empty(t, sel)
		assert.Contains(t, buf.String(), "discarding locked selection")
	})

	t.Run("store error", func(t *testing.T) {
		_, err := Load(ctx, failingStore{}, DefaultKey)
		require.ErrorIs(t, err, errBackend)
	})

	t.Run("round trip", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, Save(ctx, s, DefaultKey, sampleSelection(), WithCompression(CompressionLZ4), WithCodec(codec.JSON{})))

		sel, err := Load(ctx, s, DefaultKey)
		require.NoError(t, err)
		assert.Equal(t, sampleSelection(), sel)

		require.NoError(t, Clear(ctx, s, DefaultKey))
		sel, err = Load(ctx, s, DefaultKey)
		require.NoError(t, err)
		assert.Empty(t, sel)
	})
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("brotli")
	require.Error(t, err)
}

var errBackend = errors.New("backend unavailable")

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errBackend }
func (failingStore) Put(context.Context, string, []byte) error   { return errBackend }
func (failingStore) Delete(context.Context, string) error        { return errBackend }

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)

	for i := range 3 {
		require.NoError(t, s.Put(ctx, "a", []byte(fmt.Sprintf("v%d", i))))
	}
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)
}
