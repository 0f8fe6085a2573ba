package model

import (
	"encoding/json"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairCandidate(t *testing.T) {
	p := PairCandidate{A: math32.Vec3(0, 0, 0), B: math32.Vec3(2, 4, -6), Distance: 7.4833}

	assert.Equal(t, math32.Vec3(1, 2, -3), p.Midpoint())
	assert.Equal(t, "7.48 mm", p.Label())
	assert.Contains(t, p.String(), "7.48 mm")
}

func TestPairResult(t *testing.T) {
	var r PairResult
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.Len())

	r = append(r, PairCandidate{Distance: 1})
	assert.False(t, r.IsEmpty())
	assert.Equal(t, 1, r.Len())
}

func TestVertexKey_String(t *testing.T) {
	assert.Equal(t, "Cube.12", VertexKey{Mesh: "Cube", Index: 12}.String())
}

func TestLockedSelection(t *testing.T) {
	sel := LockedSelection{
		{Mesh: "Cube", Vertices: []int{0, 1}},
		{Mesh: "Plane", Vertices: []int{4}},
	}
	assert.Equal(t, 3, sel.Count())

	data, err := json.Marshal(sel)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"obj":"Cube","verts":[0,1]},{"obj":"Plane","verts":[4]}]`, string(data))

	var back LockedSelection
	require.NoError(t, json.Unmarshal([]byte(`[{"obj":"Cube","verts":[-3, 7]}]`), &back))
	assert.Equal(t, LockedSelection{{Mesh: "Cube", Vertices: []int{-3, 7}}}, back)
}
