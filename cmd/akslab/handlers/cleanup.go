package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/imamik/akslab/internal/provisioning"
	"github.com/imamik/akslab/internal/provisioning/destroy"
)

// Factory function variables for cleanup - can be replaced in tests.
var (
	// confirmCleanup asks the operator to confirm the teardown.
	confirmCleanup = func(ctx context.Context, resourceGroup string) (bool, error) {
		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete resource group %q and everything in it?", resourceGroup)).
				Description("This removes the cluster, storage account, and all lab data.").
				Value(&confirmed),
		))
		if err := form.RunWithContext(ctx); err != nil {
			return false, err
		}
		return confirmed, nil
	}

	// removeStateFile removes the state file (for testing injection).
	removeStateFile = os.Remove
)

// Cleanup tears down the lab.
//
// Kubernetes objects go first so the LoadBalancer releases its public IP,
// then the federated credential and the cloud identity (unless
// keepIdentity), and last the resource group. The resource group deletion
// is asynchronous; the command returns once it has started. The state file
// is removed so the next lab run starts clean.
func Cleanup(ctx context.Context, configPath string, yes, keepIdentity bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if !yes {
		confirmed, err := confirmCleanup(ctx, cfg.ResourceGroup)
		if err != nil {
			return fmt.Errorf("confirmation canceled: %w", err)
		}
		if !confirmed {
			fmt.Println("Cleanup aborted.")
			return nil
		}
	}

	log.Printf("Tearing down lab in resource group: %s", cfg.ResourceGroup)

	pCtx, err := newLabContext(ctx, cfg)
	if err != nil {
		return err
	}

	destroyer := destroy.NewProvisioner()
	destroyer.KeepIdentity = keepIdentity
	if err := runPhases(pCtx, []provisioning.Phase{destroyer}); err != nil {
		return err
	}

	if err := removeStateFile(cfg.StateFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}

	fmt.Printf("\nCleanup started. Resource group %s deletion continues in the background.\n", cfg.ResourceGroup)
	return nil
}
