package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/eksstack/cmd/eksstack/handlers"
)

// Validate returns the command for checking a stack configuration.
//
// Flags:
//
//	--config, -c: Path to configuration file (default: eksstack.yaml)
//	--json: Output findings as JSON
func Validate() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a stack configuration",
		Long: `Check a stack configuration without declaring any resource.

Errors make the command fail. Warnings point at settings that are valid
but risky, such as destroying the shared file system with the stack.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Validate(configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: eksstack.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
