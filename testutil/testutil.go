package testutil

import (
	"math/rand"
	"slices"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/hupe1980/meshdist/scene"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// UniformPoints generates num points with coordinates in [-extent, extent).
func (r *RNG) UniformPoints(num int, extent float32) []math32.Vector3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]math32.Vector3, num)
	for i := range pts {
		pts[i] = math32.Vec3(
			(r.rand.Float32()*2-1)*extent,
			(r.rand.Float32()*2-1)*extent,
			(r.rand.Float32()*2-1)*extent,
		)
	}
	return pts
}

// RandomEdges links every vertex to degree random other vertices.
// Duplicates and self-loops are dropped.
func (r *RNG) RandomEdges(numVertices, degree int) [][2]uint32 {
	if numVertices < 2 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[[2]uint32]struct{}, numVertices*degree)
	var edges [][2]uint32
	for v := range numVertices {
		for range degree {
			u := r.rand.Intn(numVertices)
			if u == v {
				continue
			}
			e := [2]uint32{uint32(min(u, v)), uint32(max(u, v))} //nolint:gosec // bounded by numVertices
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// RandomMesh builds a mesh of num uniform points joined by random edges.
func (r *RNG) RandomMesh(name string, num int, extent float32, degree int) *scene.MemoryMesh {
	return scene.NewMemoryMesh(name, r.UniformPoints(num, extent), r.RandomEdges(num, degree), nil)
}

// SelectRandom picks n distinct vertex indices below numVertices, ascending.
func (r *RNG) SelectRandom(numVertices, n int) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	perm := r.rand.Perm(numVertices)
	if n > len(perm) {
		n = len(perm)
	}
	out := make([]uint32, n)
	for i, v := range perm[:n] {
		out[i] = uint32(v) //nolint:gosec // bounded by numVertices
	}
	slices.Sort(out)
	return out
}

// GridMesh builds an nx by ny grid of quads in the XY plane with the given
// spacing. Vertex (i, j) has index j*nx+i.
func GridMesh(name string, nx, ny int, spacing float32) *scene.MemoryMesh {
	verts := make([]math32.Vector3, 0, nx*ny)
	for j := range ny {
		for i := range nx {
			verts = append(verts, math32.Vec3(float32(i)*spacing, float32(j)*spacing, 0))
		}
	}

	idx := func(i, j int) uint32 { return uint32(j*nx + i) } //nolint:gosec // grid sizes are small
	var faces [][]uint32
	for j := range ny - 1 {
		for i := range nx - 1 {
			faces = append(faces, []uint32{idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)})
		}
	}
	return scene.NewMemoryMesh(name, verts, nil, faces)
}

// Pair is a ground-truth pair by point index, i < j.
type Pair struct {
	I, J     int
	Distance float32
}

// ExactPairs returns every pair within maxDistance (inclusive), sorted by
// distance then indices.
func ExactPairs(points []math32.Vector3, maxDistance float32) []Pair {
	var out []Pair
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if d := points[i].DistanceTo(points[j]); d <= maxDistance {
				out = append(out, Pair{I: i, J: j, Distance: d})
			}
		}
	}
	slices.SortFunc(out, func(a, b Pair) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		case a.I != b.I:
			return a.I - b.I
		default:
			return a.J - b.J
		}
	})
	return out
}

// Distances extracts the distance column of pairs.
func Distances(pairs []Pair) []float32 {
	out := make([]float32, len(pairs))
	for i, p := range pairs {
		out[i] = p.Distance
	}
	return out
}
