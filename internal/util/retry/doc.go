// Package retry retries operations that fail transiently.
//
// [Do] runs an operation until it succeeds, the attempts run out, the
// context ends, or the operation returns an error marked with [Permanent].
// Delays between attempts grow exponentially up to a ceiling. Uploads to
// S3-compatible stores use it, since not every such store is covered by the
// AWS SDK's own retryer.
package retry
