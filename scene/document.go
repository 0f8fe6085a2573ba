package scene

import (
	"fmt"
	"io"

	"cogentcore.org/core/math32"
	"github.com/hupe1980/meshdist/codec"
)

// Document is the JSON form of a scene, as read by the command line tool.
type Document struct {
	Meshes []MeshDocument `json:"meshes"`
}

// MeshDocument is the JSON form of one mesh.
type MeshDocument struct {
	Name      string        `json:"name"`
	Mode      string        `json:"mode,omitempty"`
	Selected  bool          `json:"selected,omitempty"`
	Transform *[16]float32  `json:"transform,omitempty"`
	Vertices  [][3]float32  `json:"vertices"`
	Edges     [][2]uint32   `json:"edges,omitempty"`
	Faces     [][]uint32    `json:"faces,omitempty"`
	Select    SelectionJSON `json:"select,omitempty"`
}

// SelectionJSON is the JSON form of an edit-mode selection.
type SelectionJSON struct {
	Vertices []uint32    `json:"vertices,omitempty"`
	Edges    [][2]uint32 `json:"edges,omitempty"`
	Faces    [][]uint32  `json:"faces,omitempty"`
}

// ParseMode converts "object"/"edit" (or "") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "object":
		return ModeObject, nil
	case "edit":
		return ModeEdit, nil
	default:
		return ModeObject, fmt.Errorf("scene: unknown mode %q", s)
	}
}

// Decode reads a Document from r with the given codec (nil selects
// codec.Default) and builds a MemoryScene from it.
func Decode(r io.Reader, c codec.Codec) (*MemoryScene, error) {
	var doc Document
	if err := codec.DecodeReader(c, r, &doc); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	return doc.Build()
}

// Build creates a MemoryScene from the document.
func (d Document) Build() (*MemoryScene, error) {
	sc := NewMemoryScene()
	var selected []string
	for i, md := range d.Meshes {
		if md.Name == "" {
			return nil, fmt.Errorf("scene: mesh %d has no name", i)
		}
		if _, dup := sc.Mesh(md.Name); dup {
			return nil, fmt.Errorf("scene: duplicate mesh %q", md.Name)
		}
		mode, err := ParseMode(md.Mode)
		if err != nil {
			return nil, err
		}

		verts := make([]math32.Vector3, len(md.Vertices))
		for j, v := range md.Vertices {
			verts[j] = math32.Vec3(v[0], v[1], v[2])
		}
		m := NewMemoryMesh(md.Name, verts, md.Edges, md.Faces)
		if md.Transform != nil {
			m.SetTransform(math32.Matrix4(*md.Transform))
		}
		m.SetMode(mode)
		m.Select(Selection{
			Vertices: md.Select.Vertices,
			Edges:    md.Select.Edges,
			Faces:    md.Select.Faces,
		})
		sc.Add(m)
		if md.Selected {
			selected = append(selected, md.Name)
		}
	}
	sc.Select(selected...)
	return sc, nil
}
