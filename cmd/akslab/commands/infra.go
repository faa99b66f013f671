package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akslab/cmd/akslab/handlers"
)

// Infra returns the command for provisioning the lab infrastructure.
//
// This command ensures the resource group, storage account, blob container,
// optional container registry, and the AKS cluster with its OIDC issuer and
// workload identity enabled.
//
// Optional flags:
//
//	--config, -c: Path to lab configuration YAML file (default: auto-detect akslab.yaml)
//
// Environment variables:
//
//	AZURE_SUBSCRIPTION_ID: Azure subscription (required unless set in the config)
func Infra() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "infra",
		Short: "Provision the lab infrastructure",
		Long: `Provision the Azure infrastructure for the lab.

This command ensures the resource group, storage account, blob container,
optional container registry, and an AKS cluster with OIDC issuer and
workload identity enabled. Every resource is checked before creation, so
re-running after a partial failure is safe.

If no config file is specified, it looks for akslab.yaml in the current
directory. Use 'akslab init' to create a configuration file.

Examples:
  # Provision using akslab.yaml in current directory
  akslab infra

  # Provision using a specific config file
  akslab infra -c lab-westeurope.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Infra(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: akslab.yaml)")

	return cmd
}
