package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akslab/cmd/akslab/handlers"
)

// Deploy returns the command for deploying the sample application.
//
// This command renders the sample-app manifests, applies them with
// server-side apply, waits for the rollout, and then waits for the
// LoadBalancer address.
//
// Optional flags:
//
//	--config, -c: Path to lab configuration YAML file (default: auto-detect akslab.yaml)
func Deploy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the sample application",
		Long: `Deploy the sample application to the lab cluster.

This command renders the deployment, service, and service-account
manifests with the lab's values, applies them, and waits for the rollout
to complete. A missing LoadBalancer address after the wait is reported as
a warning, not a failure; check later with kubectl.

Run 'akslab infra' and 'akslab identity' first.

Examples:
  # Deploy using akslab.yaml in current directory
  akslab deploy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: akslab.yaml)")

	return cmd
}
