package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// EnsureResourceGroup creates the resource group if it does not exist.
func (c *RealClient) EnsureResourceGroup(ctx context.Context, name, location string) (*ResourceGroup, error) {
	existing, err := c.groups.Get(ctx, name, nil)
	if err == nil {
		return resourceGroupFromSDK(existing.ResourceGroup), nil
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("failed to get resource group %s: %w", name, err)
	}

	created, err := c.groups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource group %s: %w", name, err)
	}

	return resourceGroupFromSDK(created.ResourceGroup), nil
}

// BeginDeleteResourceGroup starts deleting the resource group and returns
// immediately. Deletion of everything inside continues in the background;
// nil is returned if the group is already gone.
func (c *RealClient) BeginDeleteResourceGroup(ctx context.Context, name string) error {
	_, err := c.groups.BeginDelete(ctx, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to start deletion of resource group %s: %w", name, err)
	}
	return nil
}

func resourceGroupFromSDK(rg armresources.ResourceGroup) *ResourceGroup {
	out := &ResourceGroup{}
	if rg.Name != nil {
		out.Name = *rg.Name
	}
	if rg.ID != nil {
		out.ID = *rg.ID
	}
	if rg.Location != nil {
		out.Location = *rg.Location
	}
	return out
}
