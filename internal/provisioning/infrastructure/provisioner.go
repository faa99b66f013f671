package infrastructure

import (
	"github.com/imamik/akslab/internal/provisioning"
)

// Provisioner handles infrastructure provisioning (resource group, storage,
// registry, cluster).
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "infrastructure"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Resource group
	if err := p.ProvisionResourceGroup(ctx); err != nil {
		return err
	}

	// 2. Storage account and blob container
	if err := p.ProvisionStorage(ctx); err != nil {
		return err
	}

	// 3. Container registry (optional)
	if err := p.ProvisionRegistry(ctx); err != nil {
		return err
	}

	// 4. AKS cluster
	if err := p.ProvisionCluster(ctx); err != nil {
		return err
	}

	return nil
}

// ProvisionResourceGroup ensures the resource group exists.
func (p *Provisioner) ProvisionResourceGroup(ctx *provisioning.Context) error {
	cfg := ctx.Config
	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "resource group", cfg.ResourceGroup)

	rg, err := ctx.Azure.EnsureResourceGroup(ctx, cfg.ResourceGroup, cfg.Location)
	if err != nil {
		return err
	}
	ctx.State.ResourceGroupID = rg.ID

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "resource group", rg.Name, rg.ID)
	return nil
}
