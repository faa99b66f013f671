package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/akslab/internal/config"
	"github.com/imamik/akslab/internal/provisioning"
	"github.com/imamik/akslab/internal/provisioning/deploy"
)

// Deploy deploys the sample application.
//
// This function orchestrates the third lab: rendering the sample-app
// manifests with the lab's values, applying them via server-side apply,
// waiting for the rollout, and then waiting for the LoadBalancer address.
// A rollout timeout fails the command; a missing external address is only a
// warning, and the command still records the resolved image and deployment
// name so the state file stays useful.
func Deploy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Deploying sample app to cluster: %s", cfg.Cluster.Name)

	pCtx, err := newLabContext(ctx, cfg)
	if err != nil {
		return err
	}

	deployer := deploy.NewProvisioner()
	if err := runPhases(pCtx, []provisioning.Phase{deployer}); err != nil {
		return err
	}

	pairs := [][2]string{
		{"IMAGE", deployer.ImageReference(pCtx)},
		{"DEPLOYMENT_NAME", config.DefaultSampleAppName},
		{"EXTERNAL_IP", pCtx.State.ExternalAddress},
	}
	if err := persistState(cfg, pairs); err != nil {
		return err
	}

	fmt.Printf("\nSample app deployed!\n")
	if pCtx.State.ExternalAddress != "" {
		fmt.Printf("  URL: http://%s:8080\n", pCtx.State.ExternalAddress)
	} else {
		fmt.Printf("  External address pending; check with:\n")
		fmt.Printf("    kubectl get service %s -n %s\n", config.DefaultSampleAppName, cfg.ServiceAccount.Namespace)
	}
	return nil
}
