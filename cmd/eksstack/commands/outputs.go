package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksstack/cmd/eksstack/handlers"
)

// Outputs returns the command listing the stack outputs.
//
// Flags:
//
//	--config, -c: Path to configuration file (default: eksstack.yaml)
//	--attributes: Resolved node attributes to evaluate the outputs with
//	--json: Output in JSON format
func Outputs() *cobra.Command {
	var configPath, attributesPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "outputs",
		Short: "List the stack outputs",
		Long: `List the stack outputs in registration order.

Without --attributes the values are printed as ${node.Attribute}
expressions. With a file of resolved attributes from the resolver,
the final values are printed. A missing attribute is an error.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Outputs(cmd.Context(), configPath, attributesPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: eksstack.yaml)")
	cmd.Flags().StringVar(&attributesPath, "attributes", "", "YAML or JSON file of resolved node attributes")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
