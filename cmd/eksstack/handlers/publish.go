package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/eksstack/internal/platform/s3"
	"github.com/imamik/eksstack/internal/render"
)

// Publish synthesizes the stack and uploads the document and the aws-auth
// manifest to the configured bucket.
func Publish(ctx context.Context, configPath string, remote RemoteOptions, verbosity int) error {
	cfg, state, err := synthesize(ctx, configPath, verbosity, nil)
	if err != nil {
		return err
	}
	remote = remote.resolve(cfg)

	doc, err := render.NewDocument(state.Graph)
	if err != nil {
		return err
	}
	data, err := render.Marshal(doc, render.FormatYAML)
	if err != nil {
		return err
	}
	cm, err := render.AWSAuthConfigMap(state.Graph)
	if err != nil {
		return err
	}
	manifest, err := render.MarshalManifest(cm)
	if err != nil {
		return err
	}

	pub, err := remote.publisher(ctx)
	if err != nil {
		return err
	}
	res, err := pub.Publish(ctx, s3.Artifact{
		Stack:       cfg.StackName,
		Fingerprint: render.Fingerprint(data),
		Document:    data,
		Manifest:    manifest,
	})
	if err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}

	fmt.Fprintln(stdout, paint(okStyle, "✓ published "+cfg.StackName))
	fmt.Fprintf(stdout, "  document: s3://%s/%s\n", res.Bucket, res.DocumentKey)
	fmt.Fprintf(stdout, "  latest:   s3://%s/%s\n", res.Bucket, res.LatestKey)
	if res.ManifestKey != "" {
		fmt.Fprintf(stdout, "  manifest: s3://%s/%s\n", res.Bucket, res.ManifestKey)
	}
	return nil
}
