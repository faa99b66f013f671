package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akslab/cmd/akslab/handlers"
)

// Cleanup returns the command for tearing down the lab.
//
// This command deletes the sample-app objects and the cloud identity, then
// starts the resource group deletion and clears the state file.
//
// Optional flags:
//
//	--config, -c: Path to lab configuration YAML file (default: auto-detect akslab.yaml)
//	--yes, -y: Skip the interactive confirmation
//	--keep-identity: Leave the cloud identity in place
func Cleanup() *cobra.Command {
	var (
		configPath   string
		yes          bool
		keepIdentity bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Tear down the lab resources",
		Long: `Tear down everything the lab created.

The sample-app Kubernetes objects are deleted first so the LoadBalancer
releases its public IP, then the federated credential and cloud identity,
and finally the resource group. Resource group deletion is asynchronous
and continues in Azure after the command returns.

The command asks for confirmation unless --yes is given.

Examples:
  # Tear down with confirmation prompt
  akslab cleanup

  # Tear down without prompting, keeping the identity for other labs
  akslab cleanup --yes --keep-identity`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cleanup(cmd.Context(), configPath, yes, keepIdentity)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: akslab.yaml)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&keepIdentity, "keep-identity", false, "Leave the cloud identity in place")

	return cmd
}
