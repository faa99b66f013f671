package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akslab/internal/envstate"
	"github.com/imamik/akslab/internal/platform/azure"
)

// seedState writes a state file as a previous 'akslab infra' run would.
func seedState(t *testing.T, path string, pairs [][2]string) {
	t.Helper()
	store, err := envstate.Open(path)
	require.NoError(t, err)
	store.SetAll(pairs)
	require.NoError(t, store.Save())
}

func TestIdentityPersistsOutputs(t *testing.T) {
	cfg := testConfig(t)
	mock := azure.NewMockManager()
	kube := &fakeKube{}
	swapFixtures(t, cfg, mock, kube)

	seedState(t, cfg.StateFile, [][2]string{
		{"AKS_OIDC_ISSUER", mock.IssuerURL},
	})

	err := Identity(context.Background(), "")
	require.NoError(t, err)

	// The federated credential was created against the recorded issuer.
	binding, ok := mock.FederatedCreds["akslab-identity/akslab-identity-federation"]
	require.True(t, ok)
	assert.Equal(t, mock.IssuerURL, binding.Issuer)
	assert.Equal(t, "system:serviceaccount:default:workload-identity-sa", binding.Subject)

	assert.Equal(t, 1, kube.saCalls)

	store, err := envstate.Open(cfg.StateFile)
	require.NoError(t, err)

	clientID, ok := store.Get("IDENTITY_CLIENT_ID")
	require.True(t, ok)
	assert.Equal(t, "client-akslab-identity", clientID)

	credName, ok := store.Get("FEDERATED_CREDENTIAL_NAME")
	require.True(t, ok)
	assert.Equal(t, "akslab-identity-federation", credName)
}

func TestIdentityResolvesIssuerWithoutStateFile(t *testing.T) {
	cfg := testConfig(t)
	mock := azure.NewMockManager()
	_, err := mock.EnsureCluster(context.Background(), cfg.ResourceGroup, azure.ClusterSpec{Name: cfg.Cluster.Name})
	require.NoError(t, err)
	swapFixtures(t, cfg, mock, &fakeKube{})

	err = Identity(context.Background(), "")
	require.NoError(t, err)

	assert.NotEmpty(t, mock.CallsNamed("GetCluster"))

	store, err := envstate.Open(cfg.StateFile)
	require.NoError(t, err)
	issuer, ok := store.Get("AKS_OIDC_ISSUER")
	require.True(t, ok)
	assert.Equal(t, mock.IssuerURL, issuer)
}

func TestIdentityFailsWhenRoleAssignmentFails(t *testing.T) {
	cfg := testConfig(t)
	mock := azure.NewMockManager()
	mock.Errors["AssignRole"] = assert.AnError
	swapFixtures(t, cfg, mock, &fakeKube{})

	seedState(t, cfg.StateFile, [][2]string{
		{"AKS_OIDC_ISSUER", mock.IssuerURL},
	})

	err := Identity(context.Background(), "")
	require.Error(t, err)
}
