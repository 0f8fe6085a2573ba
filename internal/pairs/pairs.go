// Package pairs enumerates candidate vertex pairs within a distance threshold.
//
// Two strategies feed the same candidate list: an exhaustive search over the
// flat pool, and a bounded breadth-first walk over edge adjacency from every
// group anchor. The walk may rediscover pairs the exhaustive search already
// found; duplicates are removed later by ranking.
package pairs

import (
	"cogentcore.org/core/math32"
	"github.com/hupe1980/meshdist/internal/bitmap"
	"github.com/hupe1980/meshdist/model"
)

// Graph is a read-only view of one mesh's adjacency and vertex positions.
type Graph interface {
	Neighbors(v uint32) []uint32
	World(v uint32) math32.Vector3
}

// Group is a set of anchors to traverse from within one Graph.
type Group struct {
	Graph   Graph
	Anchors []model.VertexRef
}

// BruteForce emits every pool pair (i < j, pool order) whose distance is
// at most maxDistance. Pools with fewer than two vertices yield nothing.
func BruteForce(pool []model.VertexRef, maxDistance float32) []model.PairCandidate {
	n := len(pool)
	if n < 2 {
		return nil
	}
	var out []model.PairCandidate
	for i := 0; i < n; i++ {
		a := pool[i].Position
		for j := i + 1; j < n; j++ {
			b := pool[j].Position
			if d := a.DistanceTo(b); d <= maxDistance {
				out = append(out, model.PairCandidate{A: a, B: b, Distance: d})
			}
		}
	}
	return out
}

// Adjacency walks up to depth edge-hops from every anchor and emits the
// anchor paired with each newly reached vertex within maxDistance.
//
// Visited sets are per anchor, so a pair can be found from both ends.
// Depth 0 or no groups yield nothing. Groups without a Graph are skipped.
func Adjacency(groups []Group, maxDistance float32, depth int) []model.PairCandidate {
	if depth <= 0 || len(groups) == 0 {
		return nil
	}

	visited := bitmap.Get()
	defer bitmap.Put(visited)

	var (
		out      []model.PairCandidate
		frontier []uint32
		next     []uint32
	)
	for _, g := range groups {
		if g.Graph == nil {
			continue
		}
		for _, anchor := range g.Anchors {
			visited.Clear()
			visited.Add(anchor.Key.Index)
			frontier = append(frontier[:0], anchor.Key.Index)

			for step := 0; step < depth; step++ {
				next = next[:0]
				for _, v := range frontier {
					for _, other := range g.Graph.Neighbors(v) {
						if !visited.Visit(other) {
							continue
						}
						next = append(next, other)

						b := g.Graph.World(other)
						if d := anchor.Position.DistanceTo(b); d <= maxDistance {
							out = append(out, model.PairCandidate{A: anchor.Position, B: b, Distance: d})
						}
					}
				}
				if len(next) == 0 {
					break
				}
				frontier, next = next, frontier
			}
		}
	}
	return out
}

// Generate runs the exhaustive stage followed by the adjacency stage.
func Generate(pool []model.VertexRef, groups []Group, maxDistance float32, depth int) []model.PairCandidate {
	out := BruteForce(pool, maxDistance)
	return append(out, Adjacency(groups, maxDistance, depth)...)
}
