package scene

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"cogentcore.org/core/math32"
)

// ErrTopologyClosed is returned when a detached topology is closed twice.
var ErrTopologyClosed = errors.New("scene: topology already closed")

// MemoryMesh is an in-memory Mesh.
// Thread-safe for concurrent reads and writes.
type MemoryMesh struct {
	mu        sync.RWMutex
	name      string
	mode      Mode
	transform math32.Matrix4
	vertices  []math32.Vector3
	edges     [][2]uint32
	faces     [][]uint32
	selection Selection

	// adjacency is derived from edges and face boundaries; nil when stale.
	adjacency [][]uint32

	openHandles atomic.Int64
}

// NewMemoryMesh creates a mesh in object mode with an identity transform.
// Edges are undirected; face boundaries also contribute edges.
func NewMemoryMesh(name string, vertices []math32.Vector3, edges [][2]uint32, faces [][]uint32) *MemoryMesh {
	return &MemoryMesh{
		name:      name,
		transform: Identity(),
		vertices:  slices.Clone(vertices),
		edges:     slices.Clone(edges),
		faces:     slices.Clone(faces),
	}
}

// Identity returns the identity transform.
func Identity() math32.Matrix4 {
	return math32.Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a transform moving points by (x, y, z).
func Translation(x, y, z float32) math32.Matrix4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Name implements Mesh.
func (m *MemoryMesh) Name() string { return m.name }

// Mode implements Mesh.
func (m *MemoryMesh) Mode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// Transform implements Mesh.
func (m *MemoryMesh) Transform() math32.Matrix4 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transform
}

// NumVertices implements Mesh.
func (m *MemoryMesh) NumVertices() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vertices)
}

// Vertex implements Mesh.
func (m *MemoryMesh) Vertex(i uint32) math32.Vector3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vertices[i]
}

// Selection implements Mesh.
func (m *MemoryMesh) Selection() Selection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.mode != ModeEdit {
		return Selection{}
	}
	return m.selection
}

// Topology implements Mesh. It returns nil outside edit mode.
func (m *MemoryMesh) Topology() Topology {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode != ModeEdit {
		return nil
	}
	if m.adjacency == nil {
		m.adjacency = buildAdjacency(len(m.vertices), m.edges, m.faces)
	}
	return adjacencyList(m.adjacency)
}

// OpenTopology implements Mesh. Every call builds a fresh adjacency that
// is counted as open until closed.
func (m *MemoryMesh) OpenTopology() (TopologyHandle, error) {
	m.mu.RLock()
	adj := buildAdjacency(len(m.vertices), m.edges, m.faces)
	m.mu.RUnlock()

	m.openHandles.Add(1)
	return &detachedTopology{adj: adj, owner: m}, nil
}

// OpenHandles returns the number of detached topologies not yet closed.
func (m *MemoryMesh) OpenHandles() int {
	return int(m.openHandles.Load())
}

// SetMode switches the editing mode.
func (m *MemoryMesh) SetMode(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
}

// SetTransform replaces the local-to-world matrix.
func (m *MemoryMesh) SetTransform(t math32.Matrix4) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transform = t
}

// SetVertex moves vertex i to a new local position.
func (m *MemoryMesh) SetVertex(i uint32, pos math32.Vector3) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(i) >= len(m.vertices) {
		return fmt.Errorf("scene: vertex %d out of range [0,%d)", i, len(m.vertices))
	}
	m.vertices[i] = pos
	return nil
}

// Truncate drops every vertex at index n and above along with the edges
// and faces that reference them.
func (m *MemoryMesh) Truncate(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n >= len(m.vertices) {
		return
	}
	m.vertices = m.vertices[:n]
	m.edges = slices.DeleteFunc(m.edges, func(e [2]uint32) bool {
		return int(e[0]) >= n || int(e[1]) >= n
	})
	m.faces = slices.DeleteFunc(m.faces, func(f []uint32) bool {
		return slices.ContainsFunc(f, func(v uint32) bool { return int(v) >= n })
	})
	m.selection = Selection{}
	m.adjacency = nil
}

// Select replaces the edit-mode selection.
func (m *MemoryMesh) Select(sel Selection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selection = Selection{
		Vertices: slices.Clone(sel.Vertices),
		Edges:    slices.Clone(sel.Edges),
		Faces:    slices.Clone(sel.Faces),
	}
}

func buildAdjacency(n int, edges [][2]uint32, faces [][]uint32) [][]uint32 {
	adj := make([][]uint32, n)
	link := func(a, b uint32) {
		if a == b || int(a) >= n || int(b) >= n {
			return
		}
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for _, e := range edges {
		link(e[0], e[1])
	}
	for _, f := range faces {
		for i := range f {
			link(f[i], f[(i+1)%len(f)])
		}
	}
	for i := range adj {
		slices.Sort(adj[i])
		adj[i] = slices.Compact(adj[i])
	}
	return adj
}

type adjacencyList [][]uint32

func (a adjacencyList) Neighbors(v uint32) []uint32 {
	if int(v) >= len(a) {
		return nil
	}
	return a[v]
}

type detachedTopology struct {
	adj    adjacencyList
	owner  *MemoryMesh
	closed atomic.Bool
}

func (t *detachedTopology) Neighbors(v uint32) []uint32 {
	return t.adj.Neighbors(v)
}

func (t *detachedTopology) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return ErrTopologyClosed
	}
	t.owner.openHandles.Add(-1)
	return nil
}

// MemoryScene is an in-memory Scene.
type MemoryScene struct {
	mu       sync.RWMutex
	meshes   []*MemoryMesh
	selected []string
}

// NewMemoryScene creates a scene holding the given meshes, none selected.
func NewMemoryScene(meshes ...*MemoryMesh) *MemoryScene {
	return &MemoryScene{meshes: meshes}
}

// Add appends a mesh to the scene.
func (s *MemoryScene) Add(m *MemoryMesh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meshes = append(s.meshes, m)
}

// Remove deletes the named mesh from the scene and the selection.
func (s *MemoryScene) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meshes = slices.DeleteFunc(s.meshes, func(m *MemoryMesh) bool { return m.name == name })
	s.selected = slices.DeleteFunc(s.selected, func(n string) bool { return n == name })
}

// Select sets the selected meshes, in order. Unknown names are ignored.
func (s *MemoryScene) Select(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = slices.Clone(names)
}

// Mesh returns the named in-memory mesh.
func (s *MemoryScene) Mesh(name string) (*MemoryMesh, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.meshes {
		if m.name == name {
			return m, true
		}
	}
	return nil, false
}

// Selected implements Scene.
func (s *MemoryScene) Selected() []Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Mesh, 0, len(s.selected))
	for _, name := range s.selected {
		for _, m := range s.meshes {
			if m.name == name {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// Lookup implements Scene.
func (s *MemoryScene) Lookup(name string) (Mesh, bool) {
	m, ok := s.Mesh(name)
	if !ok {
		return nil, false
	}
	return m, true
}
