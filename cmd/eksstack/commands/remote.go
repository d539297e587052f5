package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksstack/cmd/eksstack/handlers"
)

// bindRemoteFlags registers the flags locating the publish bucket.
func bindRemoteFlags(cmd *cobra.Command, opts *handlers.RemoteOptions) {
	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Bucket for published documents (default: publish.bucket)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Key prefix inside the bucket (default: publish.prefix)")
	cmd.Flags().StringVar(&opts.Region, "region", "", "Bucket region (default: publish.region or the stack region)")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "S3-compatible endpoint URL (default: publish.endpoint)")
}
