// Package testutil provides testing utilities for meshdist.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random point clouds and meshes, and an
// exhaustive pair search used as ground truth.
//
// # Random Meshes
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(200, 10)       // in [-10, 10)^3
//	m := rng.RandomMesh("Cube", 200, 10, 3) // three edges per vertex
//
// # Regular Grids
//
//	m := testutil.GridMesh("Plane", 4, 4, 1)
//
// # Ground Truth
//
//	want := testutil.ExactPairs(pts, maxDistance)
package testutil
