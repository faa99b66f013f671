package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
)

// EnsureCluster creates the AKS cluster if it does not exist. The OIDC
// issuer and workload-identity security profile are always enabled on
// creation; an existing cluster is returned as-is, so a cluster created
// outside the lab without those profiles will surface as a missing issuer
// URL downstream rather than being silently reconfigured here.
func (c *RealClient) EnsureCluster(ctx context.Context, resourceGroup string, spec ClusterSpec) (*Cluster, error) {
	existing, err := c.clusters.Get(ctx, resourceGroup, spec.Name, nil)
	if err == nil {
		return clusterFromSDK(existing.ManagedCluster), nil
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("failed to get cluster %s: %w", spec.Name, err)
	}

	params := armcontainerservice.ManagedCluster{
		Location: to.Ptr(spec.Location),
		Identity: &armcontainerservice.ManagedClusterIdentity{
			Type: to.Ptr(armcontainerservice.ResourceIdentityTypeSystemAssigned),
		},
		Properties: &armcontainerservice.ManagedClusterProperties{
			DNSPrefix: to.Ptr(spec.Name),
			AgentPoolProfiles: []*armcontainerservice.ManagedClusterAgentPoolProfile{
				{
					Name:   to.Ptr("nodepool1"),
					Count:  to.Ptr(spec.NodeCount),
					VMSize: to.Ptr(spec.VMSize),
					Mode:   to.Ptr(armcontainerservice.AgentPoolModeSystem),
					OSType: to.Ptr(armcontainerservice.OSTypeLinux),
				},
			},
			OidcIssuerProfile: &armcontainerservice.ManagedClusterOIDCIssuerProfile{
				Enabled: to.Ptr(true),
			},
			SecurityProfile: &armcontainerservice.ManagedClusterSecurityProfile{
				WorkloadIdentity: &armcontainerservice.ManagedClusterSecurityProfileWorkloadIdentity{
					Enabled: to.Ptr(true),
				},
			},
		},
	}
	if spec.KubernetesVersion != "" {
		params.Properties.KubernetesVersion = to.Ptr(spec.KubernetesVersion)
	}

	poller, err := c.clusters.BeginCreateOrUpdate(ctx, resourceGroup, spec.Name, params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cluster %s: %w", spec.Name, err)
	}

	resp, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{Frequency: c.pollFrequency})
	if err != nil {
		return nil, fmt.Errorf("cluster %s did not finish provisioning: %w", spec.Name, err)
	}

	return clusterFromSDK(resp.ManagedCluster), nil
}

// GetCluster fetches the cluster including its OIDC issuer URL.
func (c *RealClient) GetCluster(ctx context.Context, resourceGroup, name string) (*Cluster, error) {
	resp, err := c.clusters.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get cluster %s: %w", name, err)
	}
	return clusterFromSDK(resp.ManagedCluster), nil
}

// ClusterCredentials returns a user kubeconfig for the cluster.
func (c *RealClient) ClusterCredentials(ctx context.Context, resourceGroup, name string) ([]byte, error) {
	resp, err := c.clusters.ListClusterUserCredentials(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list cluster credentials for %s: %w", name, err)
	}
	if len(resp.Kubeconfigs) == 0 || resp.Kubeconfigs[0].Value == nil {
		return nil, fmt.Errorf("cluster %s returned no kubeconfig", name)
	}
	return resp.Kubeconfigs[0].Value, nil
}

func clusterFromSDK(mc armcontainerservice.ManagedCluster) *Cluster {
	out := &Cluster{}
	if mc.Name != nil {
		out.Name = *mc.Name
	}
	if mc.ID != nil {
		out.ID = *mc.ID
	}
	if mc.Properties != nil {
		if mc.Properties.Fqdn != nil {
			out.FQDN = *mc.Properties.Fqdn
		}
		if mc.Properties.OidcIssuerProfile != nil && mc.Properties.OidcIssuerProfile.IssuerURL != nil {
			out.OIDCIssuerURL = *mc.Properties.OidcIssuerProfile.IssuerURL
		}
		if kubelet, ok := mc.Properties.IdentityProfile["kubeletidentity"]; ok && kubelet != nil && kubelet.ObjectID != nil {
			out.KubeletPrincipalID = *kubelet.ObjectID
		}
	}
	return out
}
