package identity

import (
	"fmt"

	"github.com/imamik/akslab/internal/platform/azure"
	"github.com/imamik/akslab/internal/provisioning"
)

// Provisioner handles identity federation: cloud identity, role assignment,
// federated credential, and the annotated service account.
type Provisioner struct{}

// NewProvisioner creates a new identity provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "identity"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Cluster facts (issuer URL, kubeconfig) if an earlier invocation
	//    provisioned the infrastructure
	if err := p.ResolveCluster(ctx); err != nil {
		return err
	}

	// 2. Cloud identity
	if err := p.ProvisionIdentity(ctx); err != nil {
		return err
	}

	// 3. Blob data role at the storage account scope
	if err := p.AssignStorageRole(ctx); err != nil {
		return err
	}

	// 4. Registry pull access for the kubelet (optional)
	if err := p.AttachRegistry(ctx); err != nil {
		return err
	}

	// 5. Federated credential
	if err := p.ProvisionFederation(ctx); err != nil {
		return err
	}

	// 6. Annotated service account
	if err := p.ProvisionServiceAccount(ctx); err != nil {
		return err
	}

	return nil
}

// ResolveCluster fills the cluster facts the phase needs when they are not
// already in state, letting `akslab identity` run in a fresh process after
// `akslab infra`.
func (p *Provisioner) ResolveCluster(ctx *provisioning.Context) error {
	cfg := ctx.Config

	if ctx.State.OIDCIssuerURL == "" {
		cluster, err := ctx.Azure.GetCluster(ctx, cfg.ResourceGroup, cfg.Cluster.Name)
		if err != nil {
			return fmt.Errorf("resolving cluster %s: %w", cfg.Cluster.Name, err)
		}
		if cluster.OIDCIssuerURL == "" {
			return fmt.Errorf("cluster %s has no OIDC issuer URL; workload identity cannot federate", cluster.Name)
		}
		ctx.State.ClusterID = cluster.ID
		ctx.State.OIDCIssuerURL = cluster.OIDCIssuerURL
		ctx.State.KubeletPrincipalID = cluster.KubeletPrincipalID
	}

	if ctx.State.StorageAccountID == "" {
		account, err := ctx.Azure.EnsureStorageAccount(ctx, cfg.ResourceGroup, cfg.Storage.AccountName, cfg.Location, cfg.Storage.SKU)
		if err != nil {
			return fmt.Errorf("resolving storage account %s: %w", cfg.Storage.AccountName, err)
		}
		ctx.State.StorageAccountID = account.ID
		ctx.State.BlobEndpoint = account.BlobEndpoint
	}

	if len(ctx.State.Kubeconfig) == 0 {
		kubeconfig, err := ctx.Azure.ClusterCredentials(ctx, cfg.ResourceGroup, cfg.Cluster.Name)
		if err != nil {
			return fmt.Errorf("fetching cluster credentials: %w", err)
		}
		ctx.State.Kubeconfig = kubeconfig
	}

	return nil
}

// ProvisionIdentity ensures the cloud identity exists.
func (p *Provisioner) ProvisionIdentity(ctx *provisioning.Context) error {
	cfg := ctx.Config
	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "identity", cfg.Identity.Name)

	id, err := ctx.Azure.EnsureIdentity(ctx, cfg.ResourceGroup, cfg.Location, azure.IdentityKind(cfg.Identity.Kind), cfg.Identity.Name)
	if err != nil {
		return err
	}
	if id.TenantID == "" {
		id.TenantID = cfg.TenantID
	}
	ctx.State.Identity = id

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "identity", id.Name, id.ClientID)
	return nil
}
