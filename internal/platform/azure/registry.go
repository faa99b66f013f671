package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
)

// EnsureRegistry creates the container registry if it does not exist.
func (c *RealClient) EnsureRegistry(ctx context.Context, resourceGroup, name, location, sku string) (*Registry, error) {
	existing, err := c.registries.Get(ctx, resourceGroup, name, nil)
	if err == nil {
		return registryFromSDK(existing.Registry), nil
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("failed to get registry %s: %w", name, err)
	}

	poller, err := c.registries.BeginCreate(ctx, resourceGroup, name, armcontainerregistry.Registry{
		Location: to.Ptr(location),
		SKU: &armcontainerregistry.SKU{
			Name: to.Ptr(armcontainerregistry.SKUName(sku)),
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry %s: %w", name, err)
	}

	resp, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: c.pollFrequency})
	if err != nil {
		return nil, fmt.Errorf("registry %s did not finish provisioning: %w", name, err)
	}

	return registryFromSDK(resp.Registry), nil
}

func registryFromSDK(reg armcontainerregistry.Registry) *Registry {
	out := &Registry{}
	if reg.Name != nil {
		out.Name = *reg.Name
	}
	if reg.ID != nil {
		out.ID = *reg.ID
	}
	if reg.Properties != nil && reg.Properties.LoginServer != nil {
		out.LoginServer = *reg.Properties.LoginServer
	}
	return out
}
