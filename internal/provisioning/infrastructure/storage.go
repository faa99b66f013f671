package infrastructure

import (
	"github.com/imamik/akslab/internal/provisioning"
)

// ProvisionStorage ensures the storage account and its blob container exist.
func (p *Provisioner) ProvisionStorage(ctx *provisioning.Context) error {
	cfg := ctx.Config
	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "storage account", cfg.Storage.AccountName)

	account, err := ctx.Azure.EnsureStorageAccount(ctx, cfg.ResourceGroup, cfg.Storage.AccountName, cfg.Location, cfg.Storage.SKU)
	if err != nil {
		return err
	}
	ctx.State.StorageAccountID = account.ID
	ctx.State.BlobEndpoint = account.BlobEndpoint
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "storage account", account.Name, account.ID)

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "blob container", cfg.Storage.ContainerName)
	if err := ctx.Azure.EnsureBlobContainer(ctx, cfg.ResourceGroup, cfg.Storage.AccountName, cfg.Storage.ContainerName); err != nil {
		return err
	}
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "blob container", cfg.Storage.ContainerName, "")

	return nil
}
