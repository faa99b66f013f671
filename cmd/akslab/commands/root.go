// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the akslab CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It provides basic CLI metadata and organizes the command hierarchy.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "akslab",
		Short: "Provision an AKS workload identity lab on Azure",
	}

	// Lab commands in walkthrough order
	cmd.AddCommand(Init())
	cmd.AddCommand(Infra())
	cmd.AddCommand(Identity())
	cmd.AddCommand(Deploy())

	// Inspection and teardown
	cmd.AddCommand(Status())
	cmd.AddCommand(Env())
	cmd.AddCommand(Cleanup())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
