package s3

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/imamik/eksstack/internal/util/async"
	"github.com/imamik/eksstack/internal/util/retry"
)

const (
	// LatestName is the object that always holds the most recent document.
	LatestName = "latest.yaml"
	// ManifestName holds the aws-auth manifest of the most recent document.
	ManifestName = "aws-auth.yaml"

	yamlContentType = "application/yaml"
)

// ObjectStore is the subset of Client the publisher needs.
type ObjectStore interface {
	EnsureBucket(ctx context.Context, bucketName string) error
	PutObject(ctx context.Context, bucketName, key, contentType string, data []byte) error
	GetObject(ctx context.Context, bucketName, key string) ([]byte, error)
}

// Publisher uploads synthesized documents under <prefix>/<stack>/.
type Publisher struct {
	store  ObjectStore
	bucket string
	prefix string
	retry  []retry.Option
}

// NewPublisher creates a publisher writing to bucket. opts tune how failed
// uploads are retried.
func NewPublisher(store ObjectStore, bucket, prefix string, opts ...retry.Option) *Publisher {
	return &Publisher{store: store, bucket: bucket, prefix: prefix, retry: opts}
}

// Artifact is one synthesized stack ready for upload.
type Artifact struct {
	Stack       string
	Fingerprint string
	Document    []byte
	// Manifest is the aws-auth ConfigMap. Optional.
	Manifest []byte
}

// Result lists the keys written by Publish.
type Result struct {
	Bucket      string
	DocumentKey string
	LatestKey   string
	ManifestKey string
}

// Publish uploads the artifact. The content-addressed document and the
// manifest are uploaded concurrently; latest.yaml is written only after both
// succeeded so it never points at a partial upload.
func (p *Publisher) Publish(ctx context.Context, a Artifact) (Result, error) {
	if a.Stack == "" || a.Fingerprint == "" {
		return Result{}, errors.New("artifact needs a stack name and fingerprint")
	}
	if len(a.Document) == 0 {
		return Result{}, errors.New("artifact has no document")
	}

	if err := p.store.EnsureBucket(ctx, p.bucket); err != nil {
		return Result{}, err
	}

	res := Result{
		Bucket:      p.bucket,
		DocumentKey: p.Key(a.Stack, a.Fingerprint+".yaml"),
		LatestKey:   p.Key(a.Stack, LatestName),
	}
	uploads := []async.Task{{
		Name: "document",
		Func: func(ctx context.Context) error { return p.put(ctx, res.DocumentKey, a.Document) },
	}}
	if len(a.Manifest) > 0 {
		res.ManifestKey = p.Key(a.Stack, ManifestName)
		uploads = append(uploads, async.Task{
			Name: "manifest",
			Func: func(ctx context.Context) error { return p.put(ctx, res.ManifestKey, a.Manifest) },
		})
	}
	if err := async.Run(ctx, uploads...); err != nil {
		return Result{}, err
	}

	if err := p.put(ctx, res.LatestKey, a.Document); err != nil {
		return Result{}, fmt.Errorf("latest: %w", err)
	}
	return res, nil
}

// put uploads one object, retrying transient failures.
func (p *Publisher) put(ctx context.Context, key string, data []byte) error {
	return retry.Do(ctx, func(ctx context.Context) error {
		return p.store.PutObject(ctx, p.bucket, key, yamlContentType, data)
	}, p.retry...)
}

// Latest returns the most recently published document of a stack, or nil
// if none has been published.
func (p *Publisher) Latest(ctx context.Context, stack string) ([]byte, error) {
	data, err := p.store.GetObject(ctx, p.bucket, p.Key(stack, LatestName))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest document of %s: %w", stack, err)
	}
	return data, nil
}

// Key returns the object key of name for stack.
func (p *Publisher) Key(stack, name string) string {
	return path.Join(p.prefix, stack, name)
}
