package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
)

// EnsureStorageAccount creates the storage account if it does not exist.
// Creation is a long-running operation; this blocks until it completes.
func (c *RealClient) EnsureStorageAccount(ctx context.Context, resourceGroup, name, location, sku string) (*StorageAccount, error) {
	existing, err := c.accounts.GetProperties(ctx, resourceGroup, name, nil)
	if err == nil {
		return storageAccountFromSDK(existing.Account), nil
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("failed to get storage account %s: %w", name, err)
	}

	poller, err := c.accounts.BeginCreate(ctx, resourceGroup, name, armstorage.AccountCreateParameters{
		Location: to.Ptr(location),
		Kind:     to.Ptr(armstorage.KindStorageV2),
		SKU: &armstorage.SKU{
			Name: to.Ptr(armstorage.SKUName(sku)),
		},
		Properties: &armstorage.AccountPropertiesCreateParameters{
			AllowBlobPublicAccess: to.Ptr(false),
			MinimumTLSVersion:     to.Ptr(armstorage.MinimumTLSVersionTLS12),
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage account %s: %w", name, err)
	}

	resp, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: c.pollFrequency})
	if err != nil {
		return nil, fmt.Errorf("storage account %s did not finish provisioning: %w", name, err)
	}

	return storageAccountFromSDK(resp.Account), nil
}

// EnsureBlobContainer creates the blob container if it does not exist.
func (c *RealClient) EnsureBlobContainer(ctx context.Context, resourceGroup, account, container string) error {
	_, err := c.containers.Get(ctx, resourceGroup, account, container, nil)
	if err == nil {
		return nil
	}
	if !IsNotFound(err) {
		return fmt.Errorf("failed to get blob container %s: %w", container, err)
	}

	_, err = c.containers.Create(ctx, resourceGroup, account, container, armstorage.BlobContainer{}, nil)
	if err != nil {
		return fmt.Errorf("failed to create blob container %s: %w", container, err)
	}
	return nil
}

func storageAccountFromSDK(acct armstorage.Account) *StorageAccount {
	out := &StorageAccount{}
	if acct.Name != nil {
		out.Name = *acct.Name
	}
	if acct.ID != nil {
		out.ID = *acct.ID
	}
	if acct.Properties != nil && acct.Properties.PrimaryEndpoints != nil && acct.Properties.PrimaryEndpoints.Blob != nil {
		out.BlobEndpoint = *acct.Properties.PrimaryEndpoints.Blob
	}
	return out
}
