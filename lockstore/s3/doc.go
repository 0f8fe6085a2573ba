// Package s3 provides an S3 implementation of lockstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("meshdist/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	sel, err := lockstore.Load(ctx, store, lockstore.DefaultKey)
//
// Payloads are written through the S3 transfer manager, so very large
// selections are uploaded in parts.
package s3
