package infrastructure

import (
	"fmt"

	"github.com/imamik/akslab/internal/platform/azure"
	"github.com/imamik/akslab/internal/provisioning"
)

// ProvisionCluster ensures the AKS cluster exists and stores its OIDC
// issuer URL and kubeconfig in state.
func (p *Provisioner) ProvisionCluster(ctx *provisioning.Context) error {
	cfg := ctx.Config
	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "AKS cluster", cfg.Cluster.Name)

	cluster, err := ctx.Azure.EnsureCluster(ctx, cfg.ResourceGroup, azure.ClusterSpec{
		Name:              cfg.Cluster.Name,
		Location:          cfg.Location,
		NodeCount:         cfg.Cluster.NodeCount,
		VMSize:            cfg.Cluster.VMSize,
		KubernetesVersion: cfg.Cluster.KubernetesVersion,
	})
	if err != nil {
		return err
	}
	if cluster.OIDCIssuerURL == "" {
		return fmt.Errorf("cluster %s has no OIDC issuer URL; workload identity cannot federate", cluster.Name)
	}

	ctx.State.ClusterID = cluster.ID
	ctx.State.ClusterFQDN = cluster.FQDN
	ctx.State.OIDCIssuerURL = cluster.OIDCIssuerURL
	ctx.State.KubeletPrincipalID = cluster.KubeletPrincipalID

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "AKS cluster", cluster.Name, cluster.ID)

	kubeconfig, err := ctx.Azure.ClusterCredentials(ctx, cfg.ResourceGroup, cfg.Cluster.Name)
	if err != nil {
		return fmt.Errorf("fetching cluster credentials: %w", err)
	}
	ctx.State.Kubeconfig = kubeconfig

	return nil
}
