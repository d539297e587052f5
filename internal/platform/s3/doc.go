// Package s3 publishes synthesized stack documents to S3.
//
// The external resolver reads documents from the bucket. Every document is
// stored under a content-addressed key and copied to latest.yaml so the
// resolver, and later diffs, can find the current desired state. Any
// S3-compatible endpoint works.
package s3
