package model

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// VertexKey identifies a vertex by its owning mesh and mesh-local index.
type VertexKey struct {
	Mesh  string
	Index uint32
}

// String returns the "<mesh>.<index>" form used in snapshots and logs.
func (k VertexKey) String() string {
	return fmt.Sprintf("%s.%d", k.Mesh, k.Index)
}

// VertexRef is a resolved vertex: its identity and world-space position.
// Refs are recreated on every resolution pass and never persisted.
type VertexRef struct {
	Key      VertexKey
	Position math32.Vector3
}

// PairCandidate is a vertex pair and the Euclidean distance between them.
// The order of A and B carries no meaning.
type PairCandidate struct {
	A        math32.Vector3
	B        math32.Vector3
	Distance float32
}

// Midpoint returns the point halfway between A and B.
func (p PairCandidate) Midpoint() math32.Vector3 {
	return p.A.Add(p.B).MulScalar(0.5)
}

// Label returns the distance formatted for display next to the pair.
func (p PairCandidate) Label() string {
	return fmt.Sprintf("%.2f mm", p.Distance)
}

// String returns a human-readable representation of the candidate.
func (p PairCandidate) String() string {
	return fmt.Sprintf("(%g, %g, %g) - (%g, %g, %g): %s",
		p.A.X, p.A.Y, p.A.Z, p.B.X, p.B.Y, p.B.Z, p.Label())
}

// PairResult is the ranked pair list handed to rendering collaborators.
// Entries are ordered by ascending distance.
type PairResult []PairCandidate

// Len returns the number of pairs.
func (r PairResult) Len() int { return len(r) }

// IsEmpty reports whether the result holds no pairs.
func (r PairResult) IsEmpty() bool { return len(r) == 0 }

// LockEntry is one mesh's frozen vertex indices.
//
// Indices are kept as plain ints: persisted data is untrusted and may hold
// negative or out-of-range values, which are skipped at resolution time.
type LockEntry struct {
	Mesh     string `json:"obj"`
	Vertices []int  `json:"verts"`
}

// LockedSelection is an ordered list of per-mesh frozen vertex sets.
type LockedSelection []LockEntry

// Count returns the total number of locked indices across all entries.
func (s LockedSelection) Count() int {
	n := 0
	for _, e := range s {
		n += len(e.Vertices)
	}
	return n
}

// VertexSnapshot maps vertex identity to last-known world position.
// Snapshots are replaced wholesale, never merged.
type VertexSnapshot map[VertexKey]math32.Vector3
