package azure

import (
	"context"
)

// Manager defines the Azure operations the provisioning pipeline needs.
// Implemented by RealClient (Azure SDK) and MockManager (tests).
type Manager interface {
	// EnsureResourceGroup creates the resource group if absent.
	EnsureResourceGroup(ctx context.Context, name, location string) (*ResourceGroup, error)

	// BeginDeleteResourceGroup starts the asynchronous deletion of the
	// resource group and returns without waiting for completion.
	BeginDeleteResourceGroup(ctx context.Context, name string) error

	// EnsureStorageAccount creates the storage account if absent.
	// Creation is a long-running operation; the call returns once the
	// account is provisioned.
	EnsureStorageAccount(ctx context.Context, resourceGroup, name, location, sku string) (*StorageAccount, error)

	// EnsureBlobContainer creates the blob container if absent.
	EnsureBlobContainer(ctx context.Context, resourceGroup, account, container string) error

	// EnsureRegistry creates the container registry if absent.
	EnsureRegistry(ctx context.Context, resourceGroup, name, location, sku string) (*Registry, error)

	// EnsureCluster creates the AKS cluster if absent, with the OIDC
	// issuer and workload identity enabled.
	EnsureCluster(ctx context.Context, resourceGroup string, spec ClusterSpec) (*Cluster, error)

	// GetCluster fetches the cluster, including its OIDC issuer URL.
	GetCluster(ctx context.Context, resourceGroup, name string) (*Cluster, error)

	// ClusterCredentials returns a user kubeconfig for the cluster.
	ClusterCredentials(ctx context.Context, resourceGroup, name string) ([]byte, error)

	// EnsureIdentity creates the cloud identity if absent. Location is
	// only used for managed identities; AD applications are tenant-wide.
	EnsureIdentity(ctx context.Context, resourceGroup, location string, kind IdentityKind, name string) (*Identity, error)

	// DeleteIdentity removes the cloud identity, returning nil if absent.
	DeleteIdentity(ctx context.Context, resourceGroup string, identity *Identity) error

	// EnsureFederatedCredential binds the (issuer, subject, audience)
	// triple to the identity under credName. Lookup is by name: an
	// existing credential with that name is left untouched.
	EnsureFederatedCredential(ctx context.Context, resourceGroup string, identity *Identity, credName string, binding FederationBinding) error

	// DeleteFederatedCredential removes the named credential, returning
	// nil if absent.
	DeleteFederatedCredential(ctx context.Context, resourceGroup string, identity *Identity, credName string) error

	// AssignRole grants roleName to principalID at scope. A single
	// attempt: the caller owns the propagation retry policy. An
	// already-existing assignment is success.
	AssignRole(ctx context.Context, scope, roleName, principalID string) error
}
