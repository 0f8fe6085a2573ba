package meshdist

import (
	"slices"

	"github.com/hupe1980/meshdist/model"
	"github.com/hupe1980/meshdist/scene"
)

// LockSelection freezes the vertex selection of every selected mesh in edit
// mode. Only vertex selection flags are recorded, in ascending order; edge
// and face selections are not expanded.
//
// It returns ErrNoEditMesh when no selected mesh is in edit mode and
// ErrNothingToLock when none of them has a selected vertex.
func LockSelection(sc scene.Scene) (model.LockedSelection, error) {
	var (
		locked  model.LockedSelection
		editing bool
	)
	for _, m := range sc.Selected() {
		if m.Mode() != scene.ModeEdit {
			continue
		}
		editing = true

		n := m.NumVertices()
		var idx []int
		for _, v := range m.Selection().Vertices {
			if int(v) < n {
				idx = append(idx, int(v))
			}
		}
		if len(idx) == 0 {
			continue
		}
		slices.Sort(idx)
		locked = append(locked, model.LockEntry{Mesh: m.Name(), Vertices: slices.Compact(idx)})
	}

	if !editing {
		return nil, ErrNoEditMesh
	}
	if len(locked) == 0 {
		return nil, ErrNothingToLock
	}
	return locked, nil
}
