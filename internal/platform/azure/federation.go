package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/msi/armmsi"
	graphmodels "github.com/microsoftgraph/msgraph-sdk-go/models"
)

// EnsureFederatedCredential binds the (issuer, subject, audience) triple to
// the identity under credName. Lookup is strictly name-based: an existing
// credential with that name is left untouched even if its triple differs,
// matching the lab's re-run semantics.
func (c *RealClient) EnsureFederatedCredential(ctx context.Context, resourceGroup string, identity *Identity, credName string, binding FederationBinding) error {
	switch identity.Kind {
	case KindManagedIdentity:
		return c.ensureMSIFederatedCredential(ctx, resourceGroup, identity.Name, credName, binding)
	case KindServicePrincipal:
		return c.ensureAppFederatedCredential(ctx, identity.AppObjectID, credName, binding)
	default:
		return fmt.Errorf("unknown identity kind %q", identity.Kind)
	}
}

// DeleteFederatedCredential removes the named credential, returning nil if
// absent.
func (c *RealClient) DeleteFederatedCredential(ctx context.Context, resourceGroup string, identity *Identity, credName string) error {
	switch identity.Kind {
	case KindManagedIdentity:
		_, err := c.federatedCreds.Delete(ctx, resourceGroup, identity.Name, credName, nil)
		if err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to delete federated credential %s: %w", credName, err)
		}
		return nil
	case KindServicePrincipal:
		existing, err := c.findAppFederatedCredential(ctx, identity.AppObjectID, credName)
		if err != nil || existing == nil {
			return err
		}
		err = c.graph.Applications().ByApplicationId(identity.AppObjectID).
			FederatedIdentityCredentials().
			ByFederatedIdentityCredentialId(deref(existing.GetId())).
			Delete(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to delete federated credential %s: %w", credName, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown identity kind %q", identity.Kind)
	}
}

func (c *RealClient) ensureMSIFederatedCredential(ctx context.Context, resourceGroup, identityName, credName string, binding FederationBinding) error {
	_, err := c.federatedCreds.Get(ctx, resourceGroup, identityName, credName, nil)
	if err == nil {
		return nil
	}
	if !IsNotFound(err) {
		return fmt.Errorf("failed to get federated credential %s: %w", credName, err)
	}

	_, err = c.federatedCreds.CreateOrUpdate(ctx, resourceGroup, identityName, credName, armmsi.FederatedIdentityCredential{
		Properties: &armmsi.FederatedIdentityCredentialProperties{
			Issuer:    to.Ptr(binding.Issuer),
			Subject:   to.Ptr(binding.Subject),
			Audiences: []*string{to.Ptr(binding.Audience)},
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create federated credential %s: %w", credName, err)
	}
	return nil
}

func (c *RealClient) ensureAppFederatedCredential(ctx context.Context, appObjectID, credName string, binding FederationBinding) error {
	existing, err := c.findAppFederatedCredential(ctx, appObjectID, credName)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	fic := graphmodels.NewFederatedIdentityCredential()
	fic.SetName(to.Ptr(credName))
	fic.SetIssuer(to.Ptr(binding.Issuer))
	fic.SetSubject(to.Ptr(binding.Subject))
	fic.SetAudiences([]string{binding.Audience})

	_, err = c.graph.Applications().ByApplicationId(appObjectID).
		FederatedIdentityCredentials().
		Post(ctx, fic, nil)
	if err != nil {
		return fmt.Errorf("failed to create federated credential %s: %w", credName, err)
	}
	return nil
}

func (c *RealClient) findAppFederatedCredential(ctx context.Context, appObjectID, credName string) (graphmodels.FederatedIdentityCredentialable, error) {
	resp, err := c.graph.Applications().ByApplicationId(appObjectID).
		FederatedIdentityCredentials().
		Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list federated credentials: %w", err)
	}
	for _, fic := range resp.GetValue() {
		if deref(fic.GetName()) == credName {
			return fic, nil
		}
	}
	return nil, nil
}
