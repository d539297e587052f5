package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksstack/cmd/eksstack/handlers"
)

// Synth returns the command that renders the desired-state document.
//
// Flags:
//
//	--config, -c: Path to configuration file (default: eksstack.yaml)
//	--output, -o: Document path (default: stdout)
//	--format: yaml or json
//	--manifest: Path for the aws-auth ConfigMap
//	--metrics-file: Path for declaration metrics in Prometheus text format
//	--verbose, -v: Log every declared resource (repeatable)
func Synth() *cobra.Command {
	var opts handlers.SynthOptions

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Render the desired-state document",
		Long: `Validate the configuration, declare every resource and render the
desired-state document in deployment order.

The document lists resources with their properties and dependencies,
the network access rules and the stack outputs as unresolved
${node.Attribute} expressions. An external resolver creates the
resources and fills in the attributes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Synth(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: eksstack.yaml)")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Document output path (default: stdout)")
	cmd.Flags().StringVar(&opts.Format, "format", "yaml", "Document format (yaml or json)")
	cmd.Flags().StringVar(&opts.ManifestPath, "manifest", "", "Write the aws-auth ConfigMap to this path")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write declaration metrics to this path")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Log every declared resource")

	return cmd
}
