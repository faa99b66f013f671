package azure

// ResourceGroup is the lab's view of an Azure resource group.
type ResourceGroup struct {
	Name     string
	ID       string
	Location string
}

// StorageAccount is the lab's view of a storage account.
type StorageAccount struct {
	Name         string
	ID           string
	BlobEndpoint string
}

// Registry is the lab's view of a container registry.
type Registry struct {
	Name        string
	ID          string
	LoginServer string
}

// ClusterSpec describes the AKS cluster to ensure. The OIDC issuer and the
// workload-identity profile are always enabled; without them the federation
// exchange cannot work.
type ClusterSpec struct {
	Name              string
	Location          string
	NodeCount         int32
	VMSize            string
	KubernetesVersion string // empty selects the regional default
}

// Cluster is the lab's view of a provisioned AKS cluster.
type Cluster struct {
	Name          string
	ID            string
	FQDN          string
	OIDCIssuerURL string

	// KubeletPrincipalID is the object ID of the kubelet identity, the
	// principal that needs AcrPull when a registry is attached.
	KubeletPrincipalID string
}

// IdentityKind mirrors config.IdentityKind without importing it, keeping the
// platform package free of configuration concerns.
type IdentityKind string

const (
	KindManagedIdentity  IdentityKind = "managed"
	KindServicePrincipal IdentityKind = "service-principal"
)

// Identity is a cloud identity the workload can federate to: either a
// user-assigned managed identity or an AD application/service principal.
type Identity struct {
	Kind        IdentityKind
	Name        string
	ClientID    string
	PrincipalID string // object ID used for role assignments
	TenantID    string

	// AppObjectID is set for service principals only: the application
	// object federated credentials hang off.
	AppObjectID string
}

// FederationBinding is the (issuer, subject, audience) triple a federated
// credential binds to an identity. A credential binds exactly one triple.
type FederationBinding struct {
	Issuer   string
	Subject  string
	Audience string
}
