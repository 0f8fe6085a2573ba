// Package resolve turns a selection state into world-space vertices.
//
// The result has two views of the same data: a flat pool for brute-force
// pair search, and per-mesh groups carrying edge adjacency for traversal.
// Every group anchor is also a pool member.
package resolve

import (
	"errors"
	"log/slog"

	"cogentcore.org/core/math32"
	"github.com/hupe1980/meshdist/internal/bitmap"
	"github.com/hupe1980/meshdist/model"
	"github.com/hupe1980/meshdist/scene"
)

// Params are the resolution inputs taken from the caller's config.
type Params struct {
	// MaxVertices caps the pool across all meshes. Values < 1 disable the cap.
	MaxVertices int
	// LockEnabled selects the locked branch when Locked is non-empty.
	LockEnabled bool
	// Locked is the user-frozen vertex set.
	Locked model.LockedSelection
	// PoolOnly skips building adjacency groups; only the pool is filled.
	PoolOnly bool
	// Logger receives skipped references at debug level. May be nil.
	Logger *slog.Logger
}

// Group is one mesh's anchors plus the adjacency needed to traverse it.
type Group struct {
	Mesh     string
	Topology scene.Topology
	Anchors  []model.VertexRef

	mesh      scene.Mesh
	transform math32.Matrix4
	owned     scene.TopologyHandle
}

// Neighbors returns the vertices connected to v by an edge.
func (g *Group) Neighbors(v uint32) []uint32 {
	return g.Topology.Neighbors(v)
}

// World returns the world-space position of vertex v.
func (g *Group) World(v uint32) math32.Vector3 {
	return g.mesh.Vertex(v).MulMatrix4(&g.transform)
}

// Result is the outcome of one resolution pass.
// Close must be called once pair generation is complete.
type Result struct {
	Pool   []model.VertexRef
	Groups []*Group
	// Skipped counts locked references that no longer resolve.
	Skipped int
	// Locked reports whether the locked branch produced the result.
	Locked bool
}

// IsEmpty reports whether nothing resolved.
func (r *Result) IsEmpty() bool {
	return len(r.Pool) == 0 && len(r.Groups) == 0
}

// Close releases every topology handle the resolver opened.
// Host-owned edit-session topologies are left alone.
func (r *Result) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, g := range r.Groups {
		if g.owned != nil {
			errs = append(errs, g.owned.Close())
			g.owned = nil
		}
	}
	return errors.Join(errs...)
}

type resolver struct {
	p   Params
	res *Result
}

func (r *resolver) full() bool {
	return r.p.MaxVertices > 0 && len(r.res.Pool) >= r.p.MaxVertices
}

func (r *resolver) debug(msg string, args ...any) {
	if r.p.Logger != nil {
		r.p.Logger.Debug(msg, args...)
	}
}

// Resolve collects the vertices to consider.
//
// A non-empty locked selection is used when locking is enabled; if none of
// its entries resolve, the live selection is used instead. Stale references
// and an empty selection are not failures. When the host cannot build a
// topology for a locked mesh, its vertices stay in the pool without a group.
func Resolve(p Params, sc scene.Scene) *Result {
	r := &resolver{p: p, res: &Result{}}

	if p.LockEnabled && len(p.Locked) > 0 {
		r.locked(sc)
		if !r.res.IsEmpty() {
			r.res.Locked = true
			return r.res
		}
	}

	r.live(sc)
	return r.res
}

func (r *resolver) locked(sc scene.Scene) {
	// Indices already taken per mesh, across entries.
	seen := make(map[string]*bitmap.VertexSet)
	for _, entry := range r.p.Locked {
		if r.full() {
			return
		}
		mesh, ok := sc.Lookup(entry.Mesh)
		if !ok {
			r.res.Skipped += len(entry.Vertices)
			r.debug("locked mesh missing", "mesh", entry.Mesh, "indices", len(entry.Vertices))
			continue
		}

		taken, ok := seen[entry.Mesh]
		if !ok {
			taken = bitmap.New()
			seen[entry.Mesh] = taken
		}

		n := mesh.NumVertices()
		xf := mesh.Transform()
		var anchors []model.VertexRef
		for _, idx := range entry.Vertices {
			if idx < 0 || idx >= n {
				r.res.Skipped++
				r.debug("locked index out of range", "mesh", entry.Mesh, "index", idx, "count", n)
				continue
			}
			if !taken.Visit(uint32(idx)) {
				r.debug("locked index repeated", "mesh", entry.Mesh, "index", idx)
				continue
			}
			ref := model.VertexRef{
				Key:      model.VertexKey{Mesh: entry.Mesh, Index: uint32(idx)},
				Position: mesh.Vertex(uint32(idx)).MulMatrix4(&xf),
			}
			anchors = append(anchors, ref)
			r.res.Pool = append(r.res.Pool, ref)
			if r.full() {
				break
			}
		}
		if len(anchors) == 0 || r.p.PoolOnly {
			continue
		}

		topo, err := mesh.OpenTopology()
		if err != nil {
			if r.p.Logger != nil {
				r.p.Logger.Warn("topology unavailable", "mesh", entry.Mesh, "error", err)
			}
			continue
		}
		r.res.Groups = append(r.res.Groups, &Group{
			Mesh:      entry.Mesh,
			Topology:  topo,
			Anchors:   anchors,
			mesh:      mesh,
			transform: xf,
			owned:     topo,
		})
	}
}

func (r *resolver) live(sc scene.Scene) {
	for _, mesh := range sc.Selected() {
		if r.full() {
			return
		}
		if mesh.Mode() == scene.ModeEdit {
			r.editMesh(mesh)
		} else {
			r.objectMesh(mesh)
		}
	}
}

// objectMesh takes every vertex of the mesh, without adjacency.
func (r *resolver) objectMesh(mesh scene.Mesh) {
	xf := mesh.Transform()
	n := mesh.NumVertices()
	for i := 0; i < n && !r.full(); i++ {
		r.res.Pool = append(r.res.Pool, model.VertexRef{
			Key:      model.VertexKey{Mesh: mesh.Name(), Index: uint32(i)},
			Position: mesh.Vertex(uint32(i)).MulMatrix4(&xf),
		})
	}
}

// editMesh takes the selection expanded to vertex granularity: selected
// vertices, endpoints of selected edges and corners of selected faces.
func (r *resolver) editMesh(mesh scene.Mesh) {
	sel := mesh.Selection()
	if sel.IsEmpty() {
		return
	}

	set := bitmap.Get()
	defer bitmap.Put(set)

	set.AddMany(sel.Vertices)
	for _, e := range sel.Edges {
		set.Add(e[0])
		set.Add(e[1])
	}
	for _, f := range sel.Faces {
		set.AddMany(f)
	}

	n := uint32(mesh.NumVertices())
	xf := mesh.Transform()
	var anchors []model.VertexRef
	set.ForEach(func(v uint32) bool {
		if v >= n {
			return false
		}
		ref := model.VertexRef{
			Key:      model.VertexKey{Mesh: mesh.Name(), Index: v},
			Position: mesh.Vertex(v).MulMatrix4(&xf),
		}
		anchors = append(anchors, ref)
		r.res.Pool = append(r.res.Pool, ref)
		return !r.full()
	})
	if len(anchors) == 0 || r.p.PoolOnly {
		return
	}

	r.res.Groups = append(r.res.Groups, &Group{
		Mesh:      mesh.Name(),
		Topology:  mesh.Topology(),
		Anchors:   anchors,
		mesh:      mesh,
		transform: xf,
	})
}
