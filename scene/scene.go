package scene

import (
	"io"

	"cogentcore.org/core/math32"
)

// Mode is the editing mode a mesh is in.
type Mode int

const (
	// ModeObject is whole-object selection: every vertex of the mesh counts.
	ModeObject Mode = iota
	// ModeEdit is fine-grained (vertex/edge/face) editing.
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeObject:
		return "object"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Selection is the element selection of a mesh in edit mode.
type Selection struct {
	Vertices []uint32
	Edges    [][2]uint32
	Faces    [][]uint32
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.Vertices) == 0 && len(s.Edges) == 0 && len(s.Faces) == 0
}

// Topology is read-only edge adjacency of one mesh.
type Topology interface {
	// Neighbors returns the vertices sharing an edge with v.
	Neighbors(v uint32) []uint32
}

// TopologyHandle is a Topology built for a single caller, which must Close it.
type TopologyHandle interface {
	Topology
	io.Closer
}

// Mesh is the host's view of an editable mesh object.
//
// Implementations are owned by the host; meshdist only reads from them.
type Mesh interface {
	// Name is the mesh's identifier within its scene.
	Name() string
	// Mode reports the current editing mode.
	Mode() Mode
	// Transform is the local-to-world matrix.
	Transform() math32.Matrix4
	// NumVertices is the current vertex count.
	NumVertices() int
	// Vertex returns the local-space position of vertex i.
	Vertex(i uint32) math32.Vector3
	// Selection returns the edit-mode selection. Empty outside edit mode.
	Selection() Selection
	// Topology returns the adjacency of the live edit session, or nil
	// outside edit mode. The host owns it.
	Topology() Topology
	// OpenTopology builds a detached adjacency from the mesh data.
	OpenTopology() (TopologyHandle, error)
}

// Scene is the host's selection provider.
type Scene interface {
	// Selected returns the currently selected mesh objects, in host order.
	Selected() []Mesh
	// Lookup finds a mesh by name regardless of selection.
	Lookup(name string) (Mesh, bool)
}
