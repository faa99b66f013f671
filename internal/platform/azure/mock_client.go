package azure

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockManager is an in-memory Manager for tests. Resources are keyed by
// name; Ensure* calls record whether they created or reused, and individual
// operations can be made to fail via the error hooks.
type MockManager struct {
	mu sync.Mutex

	ResourceGroups  map[string]*ResourceGroup
	StorageAccounts map[string]*StorageAccount
	BlobContainers  map[string]bool
	Registries      map[string]*Registry
	Clusters        map[string]*Cluster
	Identities      map[string]*Identity
	FederatedCreds  map[string]FederationBinding
	RoleAssignments []MockRoleAssignment

	// Calls records method invocations in order, e.g.
	// "EnsureStorageAccount(akslabstore)".
	Calls []string

	// Errors maps a method name to an error returned on every call.
	Errors map[string]error

	// AssignRoleErrs is consumed one per AssignRole call, letting tests
	// script a propagation-delay sequence; after it is exhausted calls
	// succeed.
	AssignRoleErrs []error

	// IssuerURL is reported on clusters the mock creates.
	IssuerURL string

	// Kubeconfig is returned by ClusterCredentials.
	Kubeconfig []byte
}

// MockRoleAssignment records one successful AssignRole call.
type MockRoleAssignment struct {
	Scope       string
	RoleName    string
	PrincipalID string
}

// NewMockManager creates an empty mock.
func NewMockManager() *MockManager {
	return &MockManager{
		ResourceGroups:  make(map[string]*ResourceGroup),
		StorageAccounts: make(map[string]*StorageAccount),
		BlobContainers:  make(map[string]bool),
		Registries:      make(map[string]*Registry),
		Clusters:        make(map[string]*Cluster),
		Identities:      make(map[string]*Identity),
		FederatedCreds:  make(map[string]FederationBinding),
		Errors:          make(map[string]error),
		IssuerURL:       "https://eastus2.oic.prod-aks.azure.com/00000000-0000-0000-0000-000000000000/11111111-1111-1111-1111-111111111111/",
		Kubeconfig:      []byte("apiVersion: v1\nkind: Config\n"),
	}
}

func (m *MockManager) record(call string) error {
	m.Calls = append(m.Calls, call)
	method := call
	if i := strings.IndexByte(call, '('); i >= 0 {
		method = call[:i]
	}
	return m.Errors[method]
}

// CallsNamed returns the recorded calls for one method.
func (m *MockManager) CallsNamed(method string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, c := range m.Calls {
		if strings.HasPrefix(c, method) {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockManager) EnsureResourceGroup(_ context.Context, name, location string) (*ResourceGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("EnsureResourceGroup(%s)", name)); err != nil {
		return nil, err
	}
	if rg, ok := m.ResourceGroups[name]; ok {
		return rg, nil
	}
	rg := &ResourceGroup{
		Name:     name,
		ID:       "/subscriptions/sub-0/resourceGroups/" + name,
		Location: location,
	}
	m.ResourceGroups[name] = rg
	return rg, nil
}

func (m *MockManager) BeginDeleteResourceGroup(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("BeginDeleteResourceGroup(%s)", name)); err != nil {
		return err
	}
	delete(m.ResourceGroups, name)
	return nil
}

func (m *MockManager) EnsureStorageAccount(_ context.Context, resourceGroup, name, location, sku string) (*StorageAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("EnsureStorageAccount(%s)", name)); err != nil {
		return nil, err
	}
	if acct, ok := m.StorageAccounts[name]; ok {
		return acct, nil
	}
	acct := &StorageAccount{
		Name:         name,
		ID:           fmt.Sprintf("/subscriptions/sub-0/resourceGroups/%s/providers/Microsoft.Storage/storageAccounts/%s", resourceGroup, name),
		BlobEndpoint: fmt.Sprintf("https://%s.blob.core.windows.net/", name),
	}
	m.StorageAccounts[name] = acct
	return acct, nil
}

func (m *MockManager) EnsureBlobContainer(_ context.Context, _, account, container string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("EnsureBlobContainer(%s/%s)", account, container)); err != nil {
		return err
	}
	m.BlobContainers[account+"/"+container] = true
	return nil
}

func (m *MockManager) EnsureRegistry(_ context.Context, resourceGroup, name, location, sku string) (*Registry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("EnsureRegistry(%s)", name)); err != nil {
		return nil, err
	}
	if reg, ok := m.Registries[name]; ok {
		return reg, nil
	}
	reg := &Registry{
		Name:        name,
		ID:          fmt.Sprintf("/subscriptions/sub-0/resourceGroups/%s/providers/Microsoft.ContainerRegistry/registries/%s", resourceGroup, name),
		LoginServer: name + ".azurecr.io",
	}
	m.Registries[name] = reg
	return reg, nil
}

func (m *MockManager) EnsureCluster(_ context.Context, resourceGroup string, spec ClusterSpec) (*Cluster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("EnsureCluster(%s)", spec.Name)); err != nil {
		return nil, err
	}
	if cl, ok := m.Clusters[spec.Name]; ok {
		return cl, nil
	}
	cl := &Cluster{
		Name:               spec.Name,
		ID:                 fmt.Sprintf("/subscriptions/sub-0/resourceGroups/%s/providers/Microsoft.ContainerService/managedClusters/%s", resourceGroup, spec.Name),
		FQDN:               spec.Name + ".hcp.eastus2.azmk8s.io",
		OIDCIssuerURL:      m.IssuerURL,
		KubeletPrincipalID: "kubelet-principal-0",
	}
	m.Clusters[spec.Name] = cl
	return cl, nil
}

func (m *MockManager) GetCluster(_ context.Context, _, name string) (*Cluster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("GetCluster(%s)", name)); err != nil {
		return nil, err
	}
	cl, ok := m.Clusters[name]
	if !ok {
		return nil, fmt.Errorf("cluster %s not found", name)
	}
	return cl, nil
}

func (m *MockManager) ClusterCredentials(_ context.Context, _, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("ClusterCredentials(%s)", name)); err != nil {
		return nil, err
	}
	return m.Kubeconfig, nil
}

func (m *MockManager) EnsureIdentity(_ context.Context, _, _ string, kind IdentityKind, name string) (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("EnsureIdentity(%s)", name)); err != nil {
		return nil, err
	}
	if id, ok := m.Identities[name]; ok {
		return id, nil
	}
	id := &Identity{
		Kind:        kind,
		Name:        name,
		ClientID:    "client-" + name,
		PrincipalID: "principal-" + name,
		TenantID:    "tenant-0",
	}
	if kind == KindServicePrincipal {
		id.AppObjectID = "app-" + name
	}
	m.Identities[name] = id
	return id, nil
}

func (m *MockManager) DeleteIdentity(_ context.Context, _ string, identity *Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("DeleteIdentity(%s)", identity.Name)); err != nil {
		return err
	}
	delete(m.Identities, identity.Name)
	return nil
}

func (m *MockManager) EnsureFederatedCredential(_ context.Context, _ string, identity *Identity, credName string, binding FederationBinding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("EnsureFederatedCredential(%s/%s)", identity.Name, credName)); err != nil {
		return err
	}
	key := identity.Name + "/" + credName
	if _, exists := m.FederatedCreds[key]; exists {
		// Name-based lookup: an existing credential is left untouched.
		return nil
	}
	m.FederatedCreds[key] = binding
	return nil
}

func (m *MockManager) DeleteFederatedCredential(_ context.Context, _ string, identity *Identity, credName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("DeleteFederatedCredential(%s/%s)", identity.Name, credName)); err != nil {
		return err
	}
	delete(m.FederatedCreds, identity.Name+"/"+credName)
	return nil
}

func (m *MockManager) AssignRole(_ context.Context, scope, roleName, principalID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(fmt.Sprintf("AssignRole(%s)", roleName)); err != nil {
		return err
	}
	if len(m.AssignRoleErrs) > 0 {
		err := m.AssignRoleErrs[0]
		m.AssignRoleErrs = m.AssignRoleErrs[1:]
		if err != nil {
			return err
		}
	}
	m.RoleAssignments = append(m.RoleAssignments, MockRoleAssignment{
		Scope:       scope,
		RoleName:    roleName,
		PrincipalID: principalID,
	})
	return nil
}
