// Package change decides whether resolved vertices moved between two passes.
//
// The verdict is advisory: callers may use it to skip a recompute, but
// explicit change notifications and periodic ticks still refresh.
package change

import (
	"github.com/hupe1980/meshdist/internal/resolve"
	"github.com/hupe1980/meshdist/model"
	"github.com/hupe1980/meshdist/scene"
)

// DefaultThreshold is the distance a vertex must move to count as changed.
const DefaultThreshold float32 = 0.001

// Take records the world position of every vertex the resolver would
// consider. The vertex cap is not applied and no adjacency is built.
func Take(p resolve.Params, sc scene.Scene) model.VertexSnapshot {
	p.MaxVertices = 0
	p.PoolOnly = true
	res := resolve.Resolve(p, sc)

	snap := make(model.VertexSnapshot, len(res.Pool))
	for _, ref := range res.Pool {
		snap[ref.Key] = ref.Position
	}
	return snap
}

// Changed reports whether the key sets differ or any shared vertex moved
// farther than threshold.
func Changed(old, cur model.VertexSnapshot, threshold float32) bool {
	if len(old) != len(cur) {
		return true
	}
	for k, before := range old {
		after, ok := cur[k]
		if !ok {
			return true
		}
		if before.DistanceTo(after) > threshold {
			return true
		}
	}
	return false
}
