// Package bitmap provides roaring-backed sets of mesh-local vertex indices.
//
// Sets are used to expand an edit-mode selection to vertex granularity and
// as per-anchor visited sets during adjacency traversal. Iteration is always
// in ascending index order, which keeps resolution deterministic.
package bitmap
