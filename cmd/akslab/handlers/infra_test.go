package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akslab/internal/envstate"
	"github.com/imamik/akslab/internal/platform/azure"
)

func TestInfraPersistsOutputs(t *testing.T) {
	cfg := testConfig(t)
	mock := azure.NewMockManager()
	swapFixtures(t, cfg, mock, nil)

	err := Infra(context.Background(), "")
	require.NoError(t, err)

	assert.Contains(t, mock.ResourceGroups, "akslab-rg")
	assert.Contains(t, mock.StorageAccounts, "akslabstore")
	assert.Contains(t, mock.Clusters, "akslab-aks")

	store, err := envstate.Open(cfg.StateFile)
	require.NoError(t, err)

	value, ok := store.Get("STORAGE_ACCOUNT")
	require.True(t, ok)
	assert.Equal(t, "akslabstore", value)

	issuer, ok := store.Get("AKS_OIDC_ISSUER")
	require.True(t, ok)
	assert.Equal(t, mock.IssuerURL, issuer)

	_, ok = store.Get("ACR_NAME")
	assert.False(t, ok, "no registry was requested")
}

func TestInfraPersistsRegistryOutputs(t *testing.T) {
	cfg := testConfig(t)
	cfg.Registry = configRegistry()
	mock := azure.NewMockManager()
	swapFixtures(t, cfg, mock, nil)

	err := Infra(context.Background(), "")
	require.NoError(t, err)

	store, err := envstate.Open(cfg.StateFile)
	require.NoError(t, err)

	loginServer, ok := store.Get("ACR_LOGIN_SERVER")
	require.True(t, ok)
	assert.Equal(t, "akslabacr.azurecr.io", loginServer)
}

func TestInfraFailsWhenProvisioningFails(t *testing.T) {
	cfg := testConfig(t)
	mock := azure.NewMockManager()
	mock.Errors["EnsureStorageAccount"] = assert.AnError
	swapFixtures(t, cfg, mock, nil)

	err := Infra(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "infrastructure phase failed")

	// Nothing was persisted for the failed run.
	store, err := envstate.Open(cfg.StateFile)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestResolveSubscriptionPrefersConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.SubscriptionID = "sub-from-config"
	swapFixtures(t, cfg, azure.NewMockManager(), nil)

	sub, err := resolveSubscription(cfg)
	require.NoError(t, err)
	assert.Equal(t, "sub-from-config", sub)
}

func TestResolveSubscriptionFallsBackToEnv(t *testing.T) {
	cfg := testConfig(t)
	swapFixtures(t, cfg, azure.NewMockManager(), nil)

	sub, err := resolveSubscription(cfg)
	require.NoError(t, err)
	assert.Equal(t, "sub-0", sub)
}

func TestResolveSubscriptionMissing(t *testing.T) {
	cfg := testConfig(t)
	swapFixtures(t, cfg, azure.NewMockManager(), nil)
	lookupEnv = func(string) (string, bool) { return "", false }

	_, err := resolveSubscription(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AZURE_SUBSCRIPTION_ID")
}
