package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksstack/cmd/eksstack/handlers"
)

// Diff returns the command comparing the stack with a previous document.
//
// Flags:
//
//	--config, -c: Path to configuration file (default: eksstack.yaml)
//	--against: Previous document file
//	--bucket, --prefix, --region, --endpoint: Compare with the latest published document
func Diff() *cobra.Command {
	var configPath, againstPath string
	var remote handlers.RemoteOptions

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show what changed since a previous document",
		Long: `Compare the synthesized stack with a previous document and list the
resources to create, update and delete.

The previous document is read from --against, or from the latest
published document when a bucket is configured.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Diff(cmd.Context(), configPath, againstPath, remote)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: eksstack.yaml)")
	cmd.Flags().StringVar(&againstPath, "against", "", "Previous document to compare with")
	bindRemoteFlags(cmd, &remote)

	return cmd
}
