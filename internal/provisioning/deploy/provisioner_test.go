package deploy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akslab/internal/config"
	"github.com/imamik/akslab/internal/k8s"
	"github.com/imamik/akslab/internal/platform/azure"
	"github.com/imamik/akslab/internal/provisioning"
)

// fakeKube scripts apply and wait behavior.
type fakeKube struct {
	applied    [][]byte
	rolloutErr error
	ip         string
	ipErr      error
	ipCalls    int
}

func (f *fakeKube) ApplyManifests(_ context.Context, manifests []byte) error {
	f.applied = append(f.applied, manifests)
	return nil
}

func (f *fakeKube) DeleteManifests(context.Context, []byte) error { return nil }

func (f *fakeKube) EnsureServiceAccount(context.Context, string, string, map[string]string, map[string]string) error {
	return nil
}

func (f *fakeKube) WaitForRollout(context.Context, string, string, time.Duration, time.Duration) error {
	return f.rolloutErr
}

func (f *fakeKube) ExternalIP(context.Context, string, string, time.Duration, time.Duration) (string, error) {
	f.ipCalls++
	return f.ip, f.ipErr
}

func (f *fakeKube) WorkloadStatus(context.Context, string, string) (*k8s.Workload, error) {
	return &k8s.Workload{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ResourceGroup: "akslab-rg",
		Location:      "eastus2",
		TenantID:      "tenant-cfg",
		Storage: config.StorageConfig{
			AccountName:   "akslabstore",
			ContainerName: "data",
			SKU:           "Standard_LRS",
		},
		Cluster: config.ClusterConfig{Name: "akslab-aks"},
		Identity: config.IdentityConfig{
			Kind: config.IdentityManaged,
			Name: "akslab-identity",
		},
		ServiceAccount: config.ServiceAccountConfig{Namespace: "default", Name: "workload-identity-sa"},
		Image:          config.ImageConfig{Repository: "sample-app", Tag: "v1"},
	}
}

func testContext(cfg *config.Config, mock *azure.MockManager, kube *fakeKube) *provisioning.Context {
	observer := provisioning.NewMockObserver()
	return &provisioning.Context{
		Context:  context.Background(),
		Config:   cfg,
		State:    provisioning.NewState(),
		Azure:    mock,
		Observer: observer,
		Timeouts: config.LoadTimeouts(),
		KubeFactory: func([]byte) (k8s.Client, error) {
			return kube, nil
		},
	}
}

func TestProvisionDeploysAndRecordsAddress(t *testing.T) {
	mock := azure.NewMockManager()
	kube := &fakeKube{ip: "20.1.2.3"}
	ctx := testContext(testConfig(), mock, kube)

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)

	require.Len(t, kube.applied, 1)
	manifests := string(kube.applied[0])
	assert.Contains(t, manifests, "akslabstore")
	assert.Contains(t, manifests, "client-akslab-identity")
	assert.Contains(t, manifests, "sample-app:v1")
	assert.NotContains(t, manifests, "STORAGE_ACCOUNT_PLACEHOLDER")
	assert.NotContains(t, manifests, "CLIENT_ID_PLACEHOLDER")

	assert.Equal(t, "20.1.2.3", ctx.State.ExternalAddress)
}

func TestProvisionRendersConfiguredServiceAccount(t *testing.T) {
	mock := azure.NewMockManager()
	kube := &fakeKube{ip: "20.1.2.3"}
	cfg := testConfig()
	cfg.ServiceAccount.Name = "custom-sa"
	ctx := testContext(cfg, mock, kube)

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)

	require.Len(t, kube.applied, 1)
	manifests := string(kube.applied[0])
	assert.Contains(t, manifests, "serviceAccountName: custom-sa")
	assert.Contains(t, manifests, "name: custom-sa")
	assert.NotContains(t, manifests, "workload-identity-sa")
}

func TestProvisionFailsWhenRolloutTimesOut(t *testing.T) {
	mock := azure.NewMockManager()
	kube := &fakeKube{rolloutErr: errors.New("deployment default/sample-app did not become ready within 5m0s")}
	ctx := testContext(testConfig(), mock, kube)

	err := NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not become ready")
	assert.Zero(t, kube.ipCalls)
}

func TestProvisionWarnsWhenAddressPending(t *testing.T) {
	mock := azure.NewMockManager()
	kube := &fakeKube{ipErr: errors.New("service default/sample-app has no external address after 3m0s")}
	ctx := testContext(testConfig(), mock, kube)

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)
	assert.Empty(t, ctx.State.ExternalAddress)

	observer := ctx.Observer.(*provisioning.MockObserver)
	warnings := observer.EventsOfType(provisioning.EventWarning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "external address")
}

func TestImageReferencePrefersOverride(t *testing.T) {
	cfg := testConfig()
	cfg.Image.Override = "ghcr.io/example/sample-app:pinned"
	ctx := testContext(cfg, azure.NewMockManager(), &fakeKube{})
	ctx.State.RegistryLoginServer = "akslabacr.azurecr.io"

	assert.Equal(t, "ghcr.io/example/sample-app:pinned", NewProvisioner().ImageReference(ctx))
}

func TestImageReferenceUsesRegistryWhenProvisioned(t *testing.T) {
	ctx := testContext(testConfig(), azure.NewMockManager(), &fakeKube{})
	ctx.State.RegistryLoginServer = "akslabacr.azurecr.io"

	assert.Equal(t, "akslabacr.azurecr.io/sample-app:v1", NewProvisioner().ImageReference(ctx))
}

func TestResolveFillsIdentityAndKubeconfig(t *testing.T) {
	mock := azure.NewMockManager()
	ctx := testContext(testConfig(), mock, &fakeKube{ip: "20.0.0.1"})

	err := NewProvisioner().Provision(ctx)
	require.NoError(t, err)

	require.NotNil(t, ctx.State.Identity)
	assert.NotEmpty(t, ctx.State.Kubeconfig)
}
