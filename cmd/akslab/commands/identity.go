package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akslab/cmd/akslab/handlers"
)

// Identity returns the command for binding the workload identity federation.
//
// This command ensures the cloud identity, its RBAC role on the storage
// account, the federated credential against the cluster's OIDC issuer, and
// the annotated Kubernetes service account.
//
// Optional flags:
//
//	--config, -c: Path to lab configuration YAML file (default: auto-detect akslab.yaml)
func Identity() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Bind the workload identity federation",
		Long: `Bind the workload identity federation for the lab.

This command ensures the cloud identity (managed identity or service
principal, per the config), assigns it the storage data role, creates the
federated credential tying the cluster's OIDC issuer to the Kubernetes
service account, and annotates that service account.

Run 'akslab infra' first so the cluster and storage account exist.

Examples:
  # Bind using akslab.yaml in current directory
  akslab identity`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Identity(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: akslab.yaml)")

	return cmd
}
