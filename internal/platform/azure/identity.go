package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/msi/armmsi"
	"github.com/microsoftgraph/msgraph-sdk-go/applications"
	graphmodels "github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/serviceprincipals"
)

// EnsureIdentity creates the cloud identity if it does not exist: a
// user-assigned managed identity for KindManagedIdentity, or an AD
// application plus service principal for KindServicePrincipal.
func (c *RealClient) EnsureIdentity(ctx context.Context, resourceGroup, location string, kind IdentityKind, name string) (*Identity, error) {
	switch kind {
	case KindManagedIdentity:
		return c.ensureManagedIdentity(ctx, resourceGroup, location, name)
	case KindServicePrincipal:
		return c.ensureServicePrincipal(ctx, name)
	default:
		return nil, fmt.Errorf("unknown identity kind %q", kind)
	}
}

// DeleteIdentity removes the cloud identity, returning nil if absent.
func (c *RealClient) DeleteIdentity(ctx context.Context, resourceGroup string, identity *Identity) error {
	switch identity.Kind {
	case KindManagedIdentity:
		_, err := c.identities.Delete(ctx, resourceGroup, identity.Name, nil)
		if err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to delete managed identity %s: %w", identity.Name, err)
		}
		return nil
	case KindServicePrincipal:
		if identity.AppObjectID == "" {
			return nil
		}
		// Deleting the application cascades to the service principal
		// and its federated credentials.
		if err := c.graph.Applications().ByApplicationId(identity.AppObjectID).Delete(ctx, nil); err != nil {
			return fmt.Errorf("failed to delete application %s: %w", identity.Name, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown identity kind %q", identity.Kind)
	}
}

func (c *RealClient) ensureManagedIdentity(ctx context.Context, resourceGroup, location, name string) (*Identity, error) {
	existing, err := c.identities.Get(ctx, resourceGroup, name, nil)
	if err == nil {
		return managedIdentityFromSDK(name, existing.Identity), nil
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("failed to get managed identity %s: %w", name, err)
	}

	created, err := c.identities.CreateOrUpdate(ctx, resourceGroup, name, armmsi.Identity{
		Location: to.Ptr(location),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create managed identity %s: %w", name, err)
	}

	return managedIdentityFromSDK(name, created.Identity), nil
}

func (c *RealClient) ensureServicePrincipal(ctx context.Context, name string) (*Identity, error) {
	app, err := c.findApplication(ctx, name)
	if err != nil {
		return nil, err
	}
	if app == nil {
		newApp := graphmodels.NewApplication()
		newApp.SetDisplayName(to.Ptr(name))
		app, err = c.graph.Applications().Post(ctx, newApp, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create application %s: %w", name, err)
		}
	}

	appID := deref(app.GetAppId())
	sp, err := c.findServicePrincipal(ctx, appID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		newSP := graphmodels.NewServicePrincipal()
		newSP.SetAppId(app.GetAppId())
		sp, err = c.graph.ServicePrincipals().Post(ctx, newSP, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create service principal for %s: %w", name, err)
		}
	}

	// Tenant ID is left for the caller to fill from configuration; the
	// Graph model exposes it as a UUID type that is not worth converting
	// here.
	return &Identity{
		Kind:        KindServicePrincipal,
		Name:        name,
		ClientID:    appID,
		PrincipalID: deref(sp.GetId()),
		AppObjectID: deref(app.GetId()),
	}, nil
}

func (c *RealClient) findApplication(ctx context.Context, displayName string) (graphmodels.Applicationable, error) {
	resp, err := c.graph.Applications().Get(ctx, &applications.ApplicationsRequestBuilderGetRequestConfiguration{
		QueryParameters: &applications.ApplicationsRequestBuilderGetQueryParameters{
			Filter: to.Ptr(fmt.Sprintf("displayName eq '%s'", displayName)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up application %s: %w", displayName, err)
	}
	apps := resp.GetValue()
	if len(apps) == 0 {
		return nil, nil
	}
	return apps[0], nil
}

func (c *RealClient) findServicePrincipal(ctx context.Context, appID string) (graphmodels.ServicePrincipalable, error) {
	resp, err := c.graph.ServicePrincipals().Get(ctx, &serviceprincipals.ServicePrincipalsRequestBuilderGetRequestConfiguration{
		QueryParameters: &serviceprincipals.ServicePrincipalsRequestBuilderGetQueryParameters{
			Filter: to.Ptr(fmt.Sprintf("appId eq '%s'", appID)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up service principal for app %s: %w", appID, err)
	}
	sps := resp.GetValue()
	if len(sps) == 0 {
		return nil, nil
	}
	return sps[0], nil
}

func managedIdentityFromSDK(name string, id armmsi.Identity) *Identity {
	out := &Identity{
		Kind: KindManagedIdentity,
		Name: name,
	}
	if id.Properties != nil {
		if id.Properties.ClientID != nil {
			out.ClientID = *id.Properties.ClientID
		}
		if id.Properties.PrincipalID != nil {
			out.PrincipalID = *id.Properties.PrincipalID
		}
		if id.Properties.TenantID != nil {
			out.TenantID = *id.Properties.TenantID
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
