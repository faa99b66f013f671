package deploy

import (
	"fmt"

	"github.com/imamik/akslab/internal/config"
	"github.com/imamik/akslab/internal/manifest"
	"github.com/imamik/akslab/internal/platform/azure"
	"github.com/imamik/akslab/internal/provisioning"
)

// Provisioner deploys the sample application to the cluster.
type Provisioner struct{}

// NewProvisioner creates a new deploy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "deploy"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Facts from earlier invocations, if state is empty
	if err := p.Resolve(ctx); err != nil {
		return err
	}

	// 2. Render and apply manifests
	manifests, err := p.RenderManifests(ctx)
	if err != nil {
		return err
	}
	kube, err := ctx.KubeClient()
	if err != nil {
		return fmt.Errorf("building kubernetes client: %w", err)
	}
	if err := kube.ApplyManifests(ctx, manifests); err != nil {
		return err
	}
	ctx.Observer.Printf("[deploy] manifests applied")

	// 3. Rollout must succeed
	cfg := ctx.Config
	if err := kube.WaitForRollout(ctx, cfg.ServiceAccount.Namespace, config.DefaultSampleAppName,
		ctx.Timeouts.RolloutInterval, ctx.Timeouts.Rollout); err != nil {
		return err
	}
	ctx.Observer.Printf("[deploy] rollout complete")

	// 4. External address is best effort
	address, err := kube.ExternalIP(ctx, cfg.ServiceAccount.Namespace, config.DefaultSampleAppName,
		ctx.Timeouts.ExternalIPInterval, ctx.Timeouts.ExternalIP)
	if err != nil {
		provisioning.LogWarning(ctx.Observer, p.Name(),
			fmt.Sprintf("external address not assigned yet: %v; check the service later with kubectl get svc", err))
		return nil
	}
	ctx.State.ExternalAddress = address
	ctx.Observer.Printf("[deploy] sample app reachable at http://%s:8080", address)

	return nil
}

// Resolve fills identity and cluster facts when the deploy command runs in
// a fresh process.
func (p *Provisioner) Resolve(ctx *provisioning.Context) error {
	cfg := ctx.Config

	if ctx.State.Identity == nil {
		id, err := ctx.Azure.EnsureIdentity(ctx, cfg.ResourceGroup, cfg.Location, azure.IdentityKind(cfg.Identity.Kind), cfg.Identity.Name)
		if err != nil {
			return fmt.Errorf("resolving identity %s: %w", cfg.Identity.Name, err)
		}
		if id.TenantID == "" {
			id.TenantID = cfg.TenantID
		}
		ctx.State.Identity = id
	}

	if cfg.Registry.Create && ctx.State.RegistryLoginServer == "" {
		reg, err := ctx.Azure.EnsureRegistry(ctx, cfg.ResourceGroup, cfg.Registry.Name, cfg.Location, cfg.Registry.SKU)
		if err != nil {
			return fmt.Errorf("resolving registry %s: %w", cfg.Registry.Name, err)
		}
		ctx.State.RegistryID = reg.ID
		ctx.State.RegistryLoginServer = reg.LoginServer
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

// RenderManifests renders all sample-app templates with the lab's values.
func (p *Provisioner) RenderManifests(ctx *provisioning.Context) ([]byte, error) {
	cfg := ctx.Config
	id := ctx.State.Identity

	subs := map[string]string{
		manifest.TokenStorageAccount: cfg.Storage.AccountName,
		manifest.TokenContainerName:  cfg.Storage.ContainerName,
		manifest.TokenImage:          p.ImageReference(ctx),
		manifest.TokenClientID:       id.ClientID,
		manifest.TokenTenantID:       id.TenantID,
		manifest.TokenNamespace:      cfg.ServiceAccount.Namespace,
		manifest.TokenServiceAccount: cfg.ServiceAccount.Name,
	}

	names, err := manifest.Templates()
	if err != nil {
		return nil, err
	}

	var out []byte
	for _, name := range names {
		rendered, err := manifest.Render(name, subs)
		if err != nil {
			return nil, err
		}
		out = append(out, []byte("---\n")...)
		out = append(out, rendered...)
		out = append(out, '\n')
	}
	return out, nil
}

// ImageReference resolves the image to deploy. An explicit override wins;
// otherwise a provisioned registry prefixes the repository, and without a
// registry the configured reference is used as-is.
func (p *Provisioner) ImageReference(ctx *provisioning.Context) string {
	cfg := ctx.Config
	if cfg.Image.Override != "" {
		return cfg.Image.Override
	}
	ref := cfg.Image.Reference()
	if ctx.State.RegistryLoginServer != "" {
		return ctx.State.RegistryLoginServer + "/" + ref
	}
	return ref
}
