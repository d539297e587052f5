package handlers

import (
	"context"
	"errors"
	"os"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/platform/s3"
)

// Environment variables holding static credentials for S3-compatible
// endpoints. When unset the default AWS credential chain is used.
const (
	envAccessKey = "EKSSTACK_S3_ACCESS_KEY_ID"
	envSecretKey = "EKSSTACK_S3_SECRET_ACCESS_KEY"
)

// newObjectStore creates the object store documents are published to.
// Replaced in tests.
var newObjectStore = func(ctx context.Context, opts s3.Options) (s3.ObjectStore, error) {
	return s3.NewClient(ctx, opts)
}

// RemoteOptions locates the bucket holding published documents. Empty
// fields fall back to the config's publish section.
type RemoteOptions struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

// resolve fills empty fields from cfg.
func (o RemoteOptions) resolve(cfg *config.Config) RemoteOptions {
	if o.Bucket == "" {
		o.Bucket = cfg.Publish.Bucket
	}
	if o.Prefix == "" {
		o.Prefix = cfg.Publish.Prefix
	}
	if o.Region == "" {
		o.Region = cfg.Publish.Region
	}
	if o.Region == "" {
		o.Region = cfg.Region
	}
	if o.Endpoint == "" {
		o.Endpoint = cfg.Publish.Endpoint
	}
	return o
}

// publisher opens the object store and wraps it in a publisher.
func (o RemoteOptions) publisher(ctx context.Context) (*s3.Publisher, error) {
	if o.Bucket == "" {
		return nil, errors.New("no bucket configured: pass --bucket or set publish.bucket")
	}
	store, err := newObjectStore(ctx, s3.Options{
		Region:       o.Region,
		Endpoint:     o.Endpoint,
		AccessKey:    os.Getenv(envAccessKey),
		SecretKey:    os.Getenv(envSecretKey),
		UsePathStyle: o.Endpoint != "",
	})
	if err != nil {
		return nil, err
	}
	return s3.NewPublisher(store, o.Bucket, o.Prefix), nil
}
