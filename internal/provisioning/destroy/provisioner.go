package destroy

import (
	"fmt"

	"github.com/imamik/akslab/internal/manifest"
	"github.com/imamik/akslab/internal/platform/azure"
	"github.com/imamik/akslab/internal/provisioning"
)

// Provisioner tears down the lab: Kubernetes objects first, then the
// federated credential and identity, then the resource group.
type Provisioner struct {
	// KeepIdentity leaves the cloud identity in place, useful when it is
	// shared with other labs.
	KeepIdentity bool
}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "cleanup"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config
	ctx.Observer.Printf("[cleanup] starting teardown of %s", cfg.ResourceGroup)

	// Kubernetes objects go first so the load balancer and its public IP
	// are released before the resource group deletion races them.
	if err := p.DeleteWorkload(ctx); err != nil {
		provisioning.LogWarning(ctx.Observer, p.Name(),
			fmt.Sprintf("could not delete workload objects, continuing: %v", err))
	}

	if err := p.DeleteIdentity(ctx); err != nil {
		return err
	}

	provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "resource group", cfg.ResourceGroup)
	if err := ctx.Azure.BeginDeleteResourceGroup(ctx, cfg.ResourceGroup); err != nil {
		return fmt.Errorf("deleting resource group %s: %w", cfg.ResourceGroup, err)
	}
	ctx.Observer.Printf("[cleanup] resource group deletion started; it continues in the background")

	return nil
}

// DeleteWorkload removes the sample app objects from the cluster. A cluster
// that is already gone is not an error.
func (p *Provisioner) DeleteWorkload(ctx *provisioning.Context) error {
	cfg := ctx.Config

	if len(ctx.State.Kubeconfig) == 0 {
		kubeconfig, err := ctx.Azure.ClusterCredentials(ctx, cfg.ResourceGroup, cfg.Cluster.Name)
		if err != nil {
			return fmt.Errorf("fetching cluster credentials: %w", err)
		}
		ctx.State.Kubeconfig = kubeconfig
	}

	kube, err := ctx.KubeClient()
	if err != nil {
		return fmt.Errorf("building kubernetes client: %w", err)
	}

	names, err := manifest.Templates()
	if err != nil {
		return err
	}
	subs := map[string]string{
		manifest.TokenNamespace: cfg.ServiceAccount.Namespace,
	}
	for _, name := range names {
		rendered, err := manifest.Render(name, subs)
		if err != nil {
			return err
		}
		if err := kube.DeleteManifests(ctx, rendered); err != nil {
			return err
		}
	}

	ctx.Observer.Printf("[cleanup] workload objects deleted")
	return nil
}

// DeleteIdentity removes the federated credential and, unless KeepIdentity
// is set, the identity itself.
func (p *Provisioner) DeleteIdentity(ctx *provisioning.Context) error {
	cfg := ctx.Config

	id := ctx.State.Identity
	if id == nil {
		resolved, err := ctx.Azure.EnsureIdentity(ctx, cfg.ResourceGroup, cfg.Location, azure.IdentityKind(cfg.Identity.Kind), cfg.Identity.Name)
		if err != nil {
			provisioning.LogWarning(ctx.Observer, p.Name(),
				fmt.Sprintf("could not resolve identity %s, skipping identity cleanup: %v", cfg.Identity.Name, err))
			return nil
		}
		id = resolved
	}

	credName := cfg.FederatedCredentialName()
	provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "federated credential", credName)
	if err := ctx.Azure.DeleteFederatedCredential(ctx, cfg.ResourceGroup, id, credName); err != nil {
		return fmt.Errorf("deleting federated credential %s: %w", credName, err)
	}

	if p.KeepIdentity {
		return nil
	}

	provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "identity", id.Name)
	if err := ctx.Azure.DeleteIdentity(ctx, cfg.ResourceGroup, id); err != nil {
		return fmt.Errorf("deleting identity %s: %w", id.Name, err)
	}

	return nil
}
