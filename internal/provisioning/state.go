package provisioning

import "github.com/imamik/akslab/internal/platform/azure"

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Infrastructure results (populated by infrastructure provisioner)
	ResourceGroupID     string
	StorageAccountID    string
	BlobEndpoint        string
	RegistryID          string
	RegistryLoginServer string
	ClusterID           string
	ClusterFQDN         string
	OIDCIssuerURL       string
	KubeletPrincipalID  string
	Kubeconfig          []byte

	// Identity results (populated by identity provisioner)
	Identity *azure.Identity

	// Deploy results (populated by deploy provisioner)
	ExternalAddress string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}
