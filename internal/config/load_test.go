package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "akslab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const minimalYAML = `
resource_group: aks-storage-lab-rg
storage:
  account_name: akslabstore1234
cluster:
  name: aks-storage-lab
`

func TestLoadFile_MinimalConfigGetsDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfigFile(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, DefaultLocation, cfg.Location)
	assert.Equal(t, DefaultContainerName, cfg.Storage.ContainerName)
	assert.Equal(t, DefaultStorageSKU, cfg.Storage.SKU)
	assert.Equal(t, int32(DefaultNodeCount), cfg.Cluster.NodeCount)
	assert.Equal(t, DefaultVMSize, cfg.Cluster.VMSize)
	assert.Equal(t, IdentityManaged, cfg.Identity.Kind)
	assert.Equal(t, DefaultIdentityName, cfg.Identity.Name)
	assert.Equal(t, DefaultRoleName, cfg.Identity.RoleName)
	assert.Equal(t, DefaultNamespace, cfg.ServiceAccount.Namespace)
	assert.Equal(t, DefaultServiceAccount, cfg.ServiceAccount.Name)
}

func TestLoadFile_ExplicitValuesKept(t *testing.T) {
	cfg, err := LoadFile(writeConfigFile(t, `
resource_group: rg-custom
location: westeurope
storage:
  account_name: customstore
  container_name: blobs
cluster:
  name: custom-aks
  node_count: 3
  vm_size: Standard_D4s_v3
identity:
  kind: service-principal
  name: lab-sp
service_account:
  namespace: apps
  name: blob-reader
`))
	require.NoError(t, err)

	assert.Equal(t, "westeurope", cfg.Location)
	assert.Equal(t, "blobs", cfg.Storage.ContainerName)
	assert.Equal(t, int32(3), cfg.Cluster.NodeCount)
	assert.Equal(t, IdentityServicePrincipal, cfg.Identity.Kind)
	assert.Equal(t, "system:serviceaccount:apps:blob-reader", cfg.FederatedSubject())
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	_, err := LoadFile(writeConfigFile(t, "resource_group: [unclosed"))
	require.Error(t, err)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv(EnvCreateRegistry, "y")
	t.Setenv(EnvImageTag, "v9")
	t.Setenv(EnvImageOverride, "ghcr.io/acme/sample-app:pinned")

	cfg, err := LoadFile(writeConfigFile(t, minimalYAML+`
registry:
  name: akslabacr
`))
	require.NoError(t, err)

	assert.True(t, cfg.Registry.Create)
	assert.Equal(t, "v9", cfg.Image.Tag)
	assert.Equal(t, "ghcr.io/acme/sample-app:pinned", cfg.Image.Reference(),
		"full override wins over repository:tag")
}

func TestBoolFromEnv(t *testing.T) {
	tests := []struct {
		value  string
		want   bool
		wantOK bool
	}{
		{"y", true, true},
		{"Yes", true, true},
		{"true", true, true},
		{"1", true, true},
		{"n", false, true},
		{"no", false, true},
		{"FALSE", false, true},
		{"0", false, true},
		{"", false, false},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("AKSLAB_TEST_TOGGLE", tt.value)
			got, ok := boolFromEnv("AKSLAB_TEST_TOGGLE")
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestImageConfig_Reference(t *testing.T) {
	assert.Equal(t, "acr.azurecr.io/app:v2",
		ImageConfig{Repository: "acr.azurecr.io/app", Tag: "v2"}.Reference())
	assert.Equal(t, "acr.azurecr.io/app:v1",
		ImageConfig{Repository: "acr.azurecr.io/app"}.Reference())
	assert.Equal(t, "full/ref:x",
		ImageConfig{Repository: "ignored", Tag: "ignored", Override: "full/ref:x"}.Reference())
}
