package meshdist

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/hupe1980/meshdist/model"
	"github.com/hupe1980/meshdist/scene"
	"github.com/hupe1980/meshdist/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func objectScene(pts ...math32.Vector3) (*scene.MemoryScene, *scene.MemoryMesh) {
	m := scene.NewMemoryMesh("Cube", pts, nil, nil)
	sc := scene.NewMemoryScene(m)
	sc.Select("Cube")
	return sc, m
}

func distances(r model.PairResult) []float32 {
	out := make([]float32, len(r))
	for i, p := range r {
		out[i] = p.Distance
	}
	return out
}

func TestRefresh_FlatPool(t *testing.T) {
	sc, _ := objectScene(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(10, 0, 0))
	cfg := Config{MaxDistance: 5, MaxVertices: 100, MaxPairs: 10}

	res := Refresh(cfg, sc)

	require.Len(t, res, 1)
	assert.Equal(t, model.PairCandidate{A: math32.Vec3(0, 0, 0), B: math32.Vec3(1, 0, 0), Distance: 1}, res[0])
}

func TestRefresh_NothingInRange(t *testing.T) {
	sc, _ := objectScene(math32.Vec3(0, 0, 0), math32.Vec3(3, 0, 0))
	cfg := Config{MaxDistance: 2, MaxVertices: 100, MaxPairs: 10, NeighborDepth: 1}

	res := Refresh(cfg, sc)
	assert.True(t, res.IsEmpty())
	assert.NotNil(t, res)
}

func TestRefresh_AdjacencyFromSingleAnchor(t *testing.T) {
	m := scene.NewMemoryMesh("Cube",
		[]math32.Vector3{{}, {X: 1}, {Y: 2}, {Z: 6}},
		[][2]uint32{{0, 1}, {0, 2}, {0, 3}}, nil)
	m.SetMode(scene.ModeEdit)
	m.Select(scene.Selection{Vertices: []uint32{0}})
	sc := scene.NewMemoryScene(m)
	sc.Select("Cube")

	res := Refresh(Config{MaxDistance: 5, MaxVertices: 100, MaxPairs: 10, NeighborDepth: 1}, sc)

	assert.Equal(t, []float32{1, 2}, distances(res))
}

func TestRefresh_StaleLockedIndices(t *testing.T) {
	m := testutil.GridMesh("Cube", 5, 2, 1)
	sc := scene.NewMemoryScene(m)
	metrics := &BasicMetricsCollector{}
	eng := New(WithMetricsCollector(metrics))

	cfg := DefaultConfig()
	cfg.LockEnabled = true
	cfg.Locked = model.LockedSelection{{Mesh: "Cube", Vertices: []int{0, 1, 99}}}

	res := eng.Refresh(cfg, sc)

	// 0-1 by brute force; 0-5, 1-2 and 1-6 are one hop away on the grid.
	assert.Equal(t, []float32{1, 1, 1, 1}, distances(res))
	assert.Zero(t, m.OpenHandles(), "locked topologies are released")

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.RefreshCount)
	assert.Equal(t, int64(1), stats.SkippedRefs)
	assert.Equal(t, int64(1), stats.LockedRefreshes)
}

func TestRefresh_LockedRepeatedIndices(t *testing.T) {
	sc := scene.NewMemoryScene(testutil.GridMesh("Cube", 5, 2, 1))

	cfg := DefaultConfig()
	cfg.NeighborDepth = 0
	cfg.LockEnabled = true
	cfg.Locked = model.LockedSelection{{Mesh: "Cube", Vertices: []int{0, 0, 1}}}

	res := Refresh(cfg, sc)

	assert.Equal(t, []float32{1}, distances(res), "no self pair from a repeated index")
}

func TestRefresh_LockedUsesAdjacency(t *testing.T) {
	// Row 0 of a 4x2 grid; locking vertex 0 reaches 1 and 4 in one hop.
	m := testutil.GridMesh("Grid", 4, 2, 2)
	sc := scene.NewMemoryScene(m)

	cfg := DefaultConfig()
	cfg.LockEnabled = true
	cfg.Locked = model.LockedSelection{{Mesh: "Grid", Vertices: []int{0}}}

	res := Refresh(cfg, sc)
	assert.Equal(t, []float32{2, 2}, distances(res))
	assert.Zero(t, m.OpenHandles())
}

func TestRefresh_EmptySelection(t *testing.T) {
	sc := scene.NewMemoryScene(scene.NewMemoryMesh("Cube", []math32.Vector3{{}, {X: 1}}, nil, nil))

	assert.Empty(t, Refresh(DefaultConfig(), sc))
}

func TestRefresh_Idempotent(t *testing.T) {
	rng := testutil.NewRNG(7)
	m := rng.RandomMesh("Blob", 120, 5, 3)
	m.SetMode(scene.ModeEdit)
	m.Select(scene.Selection{Vertices: rng.SelectRandom(120, 40)})
	sc := scene.NewMemoryScene(m)
	sc.Select("Blob")

	cfg := Config{MaxDistance: 3, MaxVertices: 30, MaxPairs: 50, NeighborDepth: 2}

	first := Refresh(cfg, sc)
	require.NotEmpty(t, first)
	assert.Equal(t, first, Refresh(cfg, sc))
}

func TestRefresh_ResultInvariants(t *testing.T) {
	rng := testutil.NewRNG(99)
	a := rng.RandomMesh("A", 60, 4, 2)
	b := rng.RandomMesh("B", 60, 4, 2)
	b.SetTransform(scene.Translation(1, 0, 0))
	sc := scene.NewMemoryScene(a, b)
	sc.Select("A", "B")

	cfg := Config{MaxDistance: 1.5, MaxVertices: 100, MaxPairs: 20, NeighborDepth: 1}
	res := Refresh(cfg, sc)

	require.LessOrEqual(t, len(res), cfg.MaxPairs)
	for i, p := range res {
		assert.LessOrEqual(t, p.Distance, cfg.MaxDistance)
		assert.InDelta(t, p.A.DistanceTo(p.B), p.Distance, 1e-5)
		if i > 0 {
			assert.LessOrEqual(t, res[i-1].Distance, p.Distance)
		}
	}
}

func TestRefresh_MaxPairs(t *testing.T) {
	sc, _ := objectScene(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(3, 0, 0), math32.Vec3(6, 0, 0))

	res := Refresh(Config{MaxDistance: 100, MaxVertices: 100, MaxPairs: 2}, sc)
	assert.Equal(t, []float32{1, 2}, distances(res))
}

func TestRefresh_WorldSpace(t *testing.T) {
	a := scene.NewMemoryMesh("A", []math32.Vector3{{}}, nil, nil)
	b := scene.NewMemoryMesh("B", []math32.Vector3{{}}, nil, nil)
	b.SetTransform(scene.Translation(0, 0, 4))
	sc := scene.NewMemoryScene(a, b)
	sc.Select("A", "B")

	res := Refresh(DefaultConfig(), sc)
	require.Len(t, res, 1)
	assert.Equal(t, float32(4), res[0].Distance)
	assert.Equal(t, "4.00 mm", res[0].Label())
	assert.Equal(t, math32.Vec3(0, 0, 2), res[0].Midpoint())
}
