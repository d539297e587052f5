package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksstack/cmd/eksstack/handlers"
)

// Publish returns the command uploading the document to object storage.
//
// Flags:
//
//	--config, -c: Path to configuration file (default: eksstack.yaml)
//	--bucket, --prefix, --region, --endpoint: Target bucket
//	--verbose, -v: Log every declared resource (repeatable)
func Publish() *cobra.Command {
	var configPath string
	var remote handlers.RemoteOptions
	var verbosity int

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the document for the resolver",
		Long: `Synthesize the stack and upload the document and the aws-auth
manifest to S3 or an S3-compatible store.

Documents are stored by fingerprint under <prefix>/<stack>/ and
latest.yaml is updated last. Static credentials are read from
EKSSTACK_S3_ACCESS_KEY_ID and EKSSTACK_S3_SECRET_ACCESS_KEY, otherwise
the default AWS credential chain is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Publish(cmd.Context(), configPath, remote, verbosity)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: eksstack.yaml)")
	bindRemoteFlags(cmd, &remote)
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "Log every declared resource")

	return cmd
}
