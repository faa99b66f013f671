package infrastructure

import (
	"github.com/imamik/akslab/internal/provisioning"
)

// ProvisionRegistry ensures the container registry exists when the
// configuration asks for one. Without a registry the deploy phase uses a
// prebuilt public image instead.
func (p *Provisioner) ProvisionRegistry(ctx *provisioning.Context) error {
	cfg := ctx.Config
	if !cfg.Registry.Create {
		return nil
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "container registry", cfg.Registry.Name)

	reg, err := ctx.Azure.EnsureRegistry(ctx, cfg.ResourceGroup, cfg.Registry.Name, cfg.Location, cfg.Registry.SKU)
	if err != nil {
		return err
	}
	ctx.State.RegistryID = reg.ID
	ctx.State.RegistryLoginServer = reg.LoginServer

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "container registry", reg.Name, reg.ID)
	return nil
}
