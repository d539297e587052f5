// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the eksstack CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "eksstack",
		Short:         "Declare an application stack on EKS for an external resolver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Synth())
	cmd.AddCommand(Outputs())
	cmd.AddCommand(Diff())
	cmd.AddCommand(Publish())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
