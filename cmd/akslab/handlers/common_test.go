package handlers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/imamik/akslab/internal/config"
	"github.com/imamik/akslab/internal/k8s"
	"github.com/imamik/akslab/internal/platform/azure"
	"github.com/imamik/akslab/internal/provisioning"
)

// fakeKube satisfies k8s.Client for handler tests.
type fakeKube struct {
	applied    [][]byte
	deleted    [][]byte
	saCalls    int
	rolloutErr error
	ip         string
	ipErr      error
	workload   *k8s.Workload
	statusErr  error
}

func (f *fakeKube) ApplyManifests(_ context.Context, manifests []byte) error {
	f.applied = append(f.applied, manifests)
	return nil
}

func (f *fakeKube) DeleteManifests(_ context.Context, manifests []byte) error {
	f.deleted = append(f.deleted, manifests)
	return nil
}

func (f *fakeKube) EnsureServiceAccount(context.Context, string, string, map[string]string, map[string]string) error {
	f.saCalls++
	return nil
}

func (f *fakeKube) WaitForRollout(context.Context, string, string, time.Duration, time.Duration) error {
	return f.rolloutErr
}

func (f *fakeKube) ExternalIP(context.Context, string, string, time.Duration, time.Duration) (string, error) {
	return f.ip, f.ipErr
}

func (f *fakeKube) WorkloadStatus(context.Context, string, string) (*k8s.Workload, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	if f.workload != nil {
		return f.workload, nil
	}
	return &k8s.Workload{}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ResourceGroup: "akslab-rg",
		Location:      "eastus2",
		TenantID:      "tenant-cfg",
		Storage: config.StorageConfig{
			AccountName:   "akslabstore",
			ContainerName: "data",
			SKU:           "Standard_LRS",
		},
		Cluster: config.ClusterConfig{
			Name:      "akslab-aks",
			NodeCount: 2,
			VMSize:    "Standard_DS2_v2",
		},
		Identity: config.IdentityConfig{
			Kind:     config.IdentityManaged,
			Name:     "akslab-identity",
			RoleName: "Storage Blob Data Contributor",
		},
		ServiceAccount: config.ServiceAccountConfig{
			Namespace: "default",
			Name:      "workload-identity-sa",
		},
		Image:     config.ImageConfig{Repository: "sample-app", Tag: "v1"},
		StateFile: filepath.Join(t.TempDir(), "akslab.env"),
	}
}

func configRegistry() config.RegistryConfig {
	return config.RegistryConfig{Create: true, Attach: true, Name: "akslabacr", SKU: "Basic"}
}

// swapFixtures replaces the factory variables for one test and restores
// them afterward.
func swapFixtures(t *testing.T, cfg *config.Config, mock *azure.MockManager, kube k8s.Client) {
	t.Helper()

	origLoad := loadConfigFile
	origFind := findConfigFile
	origAzure := newAzureClient
	origCtx := newProvisioningContext
	origEnv := lookupEnv
	t.Cleanup(func() {
		loadConfigFile = origLoad
		findConfigFile = origFind
		newAzureClient = origAzure
		newProvisioningContext = origCtx
		lookupEnv = origEnv
	})

	loadConfigFile = func(string) (*config.Config, error) { return cfg, nil }
	findConfigFile = func() (string, error) { return "akslab.yaml", nil }
	newAzureClient = func(string) (azure.Manager, error) { return mock, nil }
	lookupEnv = func(key string) (string, bool) {
		if key == "AZURE_SUBSCRIPTION_ID" {
			return "sub-0", true
		}
		return "", false
	}
	newProvisioningContext = func(ctx context.Context, c *config.Config, m azure.Manager) *provisioning.Context {
		pCtx := provisioning.NewContext(ctx, c, m)
		pCtx.Observer = provisioning.NewMockObserver()
		pCtx.Timeouts.RoleAssignInterval = time.Millisecond
		if kube != nil {
			pCtx.KubeFactory = func([]byte) (k8s.Client, error) { return kube, nil }
		}
		return pCtx
	}
}
