// Package minio provides a MinIO (or any S3-compatible server)
// implementation of lockstore.Store.
package minio
