package identity

import (
	"fmt"

	"github.com/imamik/akslab/internal/config"
	"github.com/imamik/akslab/internal/platform/azure"
	"github.com/imamik/akslab/internal/provisioning"
)

// ProvisionFederation ensures the federated credential binding the
// cluster's OIDC issuer and the service account subject to the identity.
func (p *Provisioner) ProvisionFederation(ctx *provisioning.Context) error {
	cfg := ctx.Config
	id := ctx.State.Identity
	if id == nil {
		return fmt.Errorf("no identity in state; run the identity step first")
	}

	credName := cfg.FederatedCredentialName()
	binding := azure.FederationBinding{
		Issuer:   ctx.State.OIDCIssuerURL,
		Subject:  cfg.FederatedSubject(),
		Audience: config.FederationAudience,
	}

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "federated credential", credName)
	if err := ctx.Azure.EnsureFederatedCredential(ctx, cfg.ResourceGroup, id, credName, binding); err != nil {
		return fmt.Errorf("ensuring federated credential %s: %w", credName, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "federated credential", credName, binding.Subject)

	return nil
}

// ProvisionServiceAccount creates or annotates the workload's service
// account so the webhook injects the projected token for this identity.
func (p *Provisioner) ProvisionServiceAccount(ctx *provisioning.Context) error {
	cfg := ctx.Config
	id := ctx.State.Identity
	if id == nil {
		return fmt.Errorf("no identity in state; run the identity step first")
	}

	kube, err := ctx.KubeClient()
	if err != nil {
		return fmt.Errorf("building kubernetes client: %w", err)
	}

	annotations := map[string]string{
		config.ClientIDAnnotation: id.ClientID,
		config.TenantIDAnnotation: id.TenantID,
	}
	labels := map[string]string{
		config.UseWorkloadIdentityLabel: "true",
	}

	if err := kube.EnsureServiceAccount(ctx, cfg.ServiceAccount.Namespace, cfg.ServiceAccount.Name, annotations, labels); err != nil {
		return err
	}

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "service account",
		cfg.ServiceAccount.Namespace+"/"+cfg.ServiceAccount.Name, id.ClientID)
	return nil
}
