package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	awsddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/hupe1980/meshdist/lockstore"
	"github.com/hupe1980/meshdist/lockstore/dynamodb"
	lsminio "github.com/hupe1980/meshdist/lockstore/minio"
	"github.com/hupe1980/meshdist/lockstore/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// openStore maps a --lock-store value to a Store. Anything without a
// recognized scheme is a local directory.
func openStore(ctx context.Context, uri string) (lockstore.Store, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return lockstore.NewLocalStore(uri), nil
	}
	path := strings.Trim(u.Path, "/")

	switch u.Scheme {
	case "file":
		dir := u.Path
		if dir == "" {
			dir = u.Opaque
		}
		if dir == "" {
			return nil, fmt.Errorf("lock store %q: missing directory", uri)
		}
		return lockstore.NewLocalStore(dir), nil
	case "s3":
		return s3.New(ctx, u.Host, s3.WithPrefix(path))
	case "minio":
		bucket, prefix, _ := strings.Cut(path, "/")
		if bucket == "" {
			return nil, fmt.Errorf("lock store %q: missing bucket", uri)
		}
		client, err := minio.New(u.Host, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: u.Query().Get("secure") != "false",
		})
		if err != nil {
			return nil, err
		}
		return lsminio.NewStore(client, bucket, prefix), nil
	case "dynamodb":
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		return dynamodb.NewStore(awsddb.NewFromConfig(cfg), u.Host, path), nil
	default:
		return nil, fmt.Errorf("lock store %q: unsupported scheme %q", uri, u.Scheme)
	}
}
