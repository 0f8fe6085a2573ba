// Package scene describes the host capabilities meshdist consumes.
//
// A host 3D editor exposes its scene through the Scene and Mesh interfaces:
// which meshes are selected, their editing mode, transforms, vertex data,
// element selection and edge adjacency. meshdist never mutates any of it.
//
// MemoryScene and MemoryMesh are complete in-memory implementations used by
// tests and by the command line tool, which loads them from a JSON Document.
package scene
