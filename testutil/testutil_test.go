package testutil

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	pts := rng.UniformPoints(64, 5)

	require.Len(t, pts, 64)
	for _, p := range pts {
		for _, c := range []float32{p.X, p.Y, p.Z} {
			assert.GreaterOrEqual(t, c, float32(-5))
			assert.Less(t, c, float32(5))
		}
	}
}

func TestRandomEdges(t *testing.T) {
	rng := NewRNG(4711)

	edges := rng.RandomEdges(50, 3)

	seen := map[[2]uint32]bool{}
	for _, e := range edges {
		assert.Less(t, e[0], e[1])
		assert.Less(t, e[1], uint32(50))
		assert.False(t, seen[e], "duplicate edge %v", e)
		seen[e] = true
	}
	assert.Nil(t, rng.RandomEdges(1, 3))
}

func TestSelectRandom(t *testing.T) {
	rng := NewRNG(4711)

	sel := rng.SelectRandom(10, 4)
	require.Len(t, sel, 4)
	assert.IsIncreasing(t, sel)

	assert.Len(t, rng.SelectRandom(3, 10), 3)
}

func TestGridMesh(t *testing.T) {
	m := GridMesh("Plane", 3, 2, 2)

	assert.Equal(t, 6, m.NumVertices())
	assert.Equal(t, math32.Vec3(4, 2, 0), m.Vertex(5))

	h, err := m.OpenTopology()
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, []uint32{1, 3}, h.Neighbors(0))
	assert.Equal(t, []uint32{0, 2, 4}, h.Neighbors(1))
}

func TestExactPairs(t *testing.T) {
	pts := []math32.Vector3{{}, {X: 1}, {X: 3}}

	got := ExactPairs(pts, 2)

	assert.Equal(t, []Pair{{I: 0, J: 1, Distance: 1}, {I: 1, J: 2, Distance: 2}}, got)
	assert.Equal(t, []float32{1, 2}, Distances(got))
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	p1 := rng.UniformPoints(3, 1)
	rng.Reset()
	p2 := rng.UniformPoints(3, 1)

	assert.Equal(t, p1, p2)
	assert.Equal(t, int64(4711), rng.Seed())
}
