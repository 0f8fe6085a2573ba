// Package lockstore persists locked vertex selections.
//
// Hosts keep a locked selection as a string, historically a JSON array of
// {"obj": <mesh>, "verts": [<index>...]} records. This package reads that
// form as-is and can also write a framed form that records the codec and an
// optional zstd or lz4 compression, which matters for large selections kept
// in remote stores.
//
// Implementations:
//
//   - MemoryStore: in-process, for tests and hosts that own persistence
//   - LocalStore: one file per key under a root directory
//   - s3.Store, minio.Store, dynamodb.Store: remote stores
//
// Unreadable payloads never fail a load: Load returns an empty selection so
// callers fall back to the live selection.
package lockstore
