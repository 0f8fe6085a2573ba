// Package model defines core types used throughout meshdist.
//
// # Identity Types
//
//   - VertexKey: owning mesh name + mesh-local vertex index
//   - VertexRef: a VertexKey with its world-space position
//
// # Result Types
//
//   - PairCandidate: two world positions and the distance between them
//   - PairResult: ranked, deduplicated, truncated candidates (ascending distance)
//
// # Persistent Types
//
//   - LockedSelection: user-frozen vertex indices per mesh, in the
//     {"obj": ..., "verts": [...]} record format hosts already store.
//   - VertexSnapshot: key to position mapping used for change detection.
package model
