package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/akslab/internal/provisioning"
	"github.com/imamik/akslab/internal/provisioning/infrastructure"
)

// Infra provisions the lab infrastructure.
//
// This function orchestrates the first lab: resource group, storage account
// and blob container, optional container registry, and the AKS cluster with
// OIDC issuer and workload identity enabled. Every resource uses
// get-before-create, so re-running after a partial failure resumes where it
// stopped. Outputs land in the state file for the later lab commands.
func Infra(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Provisioning lab infrastructure in resource group: %s", cfg.ResourceGroup)

	pCtx, err := newLabContext(ctx, cfg)
	if err != nil {
		return err
	}

	if err := runPhases(pCtx, []provisioning.Phase{infrastructure.NewProvisioner()}); err != nil {
		return err
	}

	state := pCtx.State
	pairs := [][2]string{
		{"RESOURCE_GROUP", cfg.ResourceGroup},
		{"LOCATION", cfg.Location},
		{"STORAGE_ACCOUNT", cfg.Storage.AccountName},
		{"CONTAINER_NAME", cfg.Storage.ContainerName},
		{"BLOB_ENDPOINT", state.BlobEndpoint},
		{"AKS_CLUSTER", cfg.Cluster.Name},
		{"AKS_OIDC_ISSUER", state.OIDCIssuerURL},
	}
	if cfg.Registry.Create {
		pairs = append(pairs,
			[2]string{"ACR_NAME", cfg.Registry.Name},
			[2]string{"ACR_LOGIN_SERVER", state.RegistryLoginServer},
		)
	}
	if err := persistState(cfg, pairs); err != nil {
		return err
	}

	fmt.Printf("\nInfrastructure ready!\n")
	fmt.Printf("Outputs saved to: %s\n", cfg.StateFile)
	fmt.Printf("\nNext: bind the workload identity with:\n")
	fmt.Printf("  akslab identity\n")
	return nil
}
