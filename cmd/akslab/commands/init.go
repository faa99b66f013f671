package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akslab/cmd/akslab/handlers"
)

// Init returns the command for interactively creating a lab configuration.
//
// This command guides users through creating the lab configuration YAML file
// using an interactive wizard with text inputs, single-select, and confirm
// prompts.
//
// Flags:
//
//	--output, -o: Path to output file (default "akslab.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a lab configuration",
		Long: `Interactively create a lab configuration file.

This command guides you through configuring the lab step by step.
It will ask about:

  - Resource group, storage account, and cluster names
  - Azure region
  - Worker node count
  - Identity mode (managed identity or service principal)
  - Optional container registry

The remaining settings get sensible defaults matching the lab
walkthrough; edit the generated YAML to change them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "akslab.yaml", "Output file path")

	return cmd
}
