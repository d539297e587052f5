package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksstack/cmd/eksstack/handlers"
)

// Init returns the command for interactively creating a stack configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "eksstack.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a stack configuration",
		Long: `Interactively create a stack configuration file.

The wizard asks for:

  - Stack identity (stack name, application, region)
  - The IAM user or role administering the cluster
  - Kubernetes version and availability zone count
  - A node pool preset (on-demand, mixed or spot)

Everything else uses defaults that can be edited in the file.
A .toml output path writes TOML instead of YAML.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "eksstack.yaml", "Output file path")

	return cmd
}
