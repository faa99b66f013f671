// Package config defines the lab configuration: resource names, cluster
// sizing, identity mode, and the environment-variable overrides the lab
// scripts historically honored.
package config

// Config is the top-level lab configuration, loaded from akslab.yaml.
type Config struct {
	// ResourceGroup is the Azure resource group holding every lab resource.
	ResourceGroup string `yaml:"resource_group" mapstructure:"resource_group"`

	// Location is the Azure region, e.g. "eastus2".
	Location string `yaml:"location" mapstructure:"location"`

	// SubscriptionID may be left empty to use the credential's default.
	SubscriptionID string `yaml:"subscription_id,omitempty" mapstructure:"subscription_id"`

	// TenantID is required for the service-account annotation.
	TenantID string `yaml:"tenant_id,omitempty" mapstructure:"tenant_id"`

	Storage        StorageConfig        `yaml:"storage" mapstructure:"storage"`
	Registry       RegistryConfig       `yaml:"registry" mapstructure:"registry"`
	Cluster        ClusterConfig        `yaml:"cluster" mapstructure:"cluster"`
	Identity       IdentityConfig       `yaml:"identity" mapstructure:"identity"`
	ServiceAccount ServiceAccountConfig `yaml:"service_account" mapstructure:"service_account"`
	Image          ImageConfig          `yaml:"image" mapstructure:"image"`

	// StateFile is the KEY=VALUE file shared across lab commands.
	StateFile string `yaml:"state_file,omitempty" mapstructure:"state_file"`
}

// StorageConfig describes the storage account and blob container.
type StorageConfig struct {
	AccountName   string `yaml:"account_name" mapstructure:"account_name"`
	ContainerName string `yaml:"container_name" mapstructure:"container_name"`
	SKU           string `yaml:"sku,omitempty" mapstructure:"sku"`
}

// RegistryConfig describes the optional container registry.
type RegistryConfig struct {
	Create bool   `yaml:"create" mapstructure:"create"`
	Attach bool   `yaml:"attach" mapstructure:"attach"`
	Name   string `yaml:"name,omitempty" mapstructure:"name"`
	SKU    string `yaml:"sku,omitempty" mapstructure:"sku"`
}

// ClusterConfig describes the AKS cluster.
type ClusterConfig struct {
	Name              string `yaml:"name" mapstructure:"name"`
	NodeCount         int32  `yaml:"node_count" mapstructure:"node_count"`
	VMSize            string `yaml:"vm_size" mapstructure:"vm_size"`
	KubernetesVersion string `yaml:"kubernetes_version,omitempty" mapstructure:"kubernetes_version"`
}

// IdentityKind selects how the workload's cloud identity is realized.
type IdentityKind string

const (
	// IdentityManaged uses a user-assigned managed identity.
	IdentityManaged IdentityKind = "managed"
	// IdentityServicePrincipal uses an AD application + service principal.
	IdentityServicePrincipal IdentityKind = "service-principal"
)

// IdentityConfig describes the cloud identity and its RBAC grant.
type IdentityConfig struct {
	Kind IdentityKind `yaml:"kind" mapstructure:"kind"`
	Name string       `yaml:"name" mapstructure:"name"`

	// RoleName is the RBAC role assigned at the storage account scope.
	RoleName string `yaml:"role_name,omitempty" mapstructure:"role_name"`
}

// ServiceAccountConfig is the Kubernetes side of the federation binding.
// The OIDC subject is derived from it as
// system:serviceaccount:<namespace>:<name>.
type ServiceAccountConfig struct {
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
	Name      string `yaml:"name" mapstructure:"name"`
}

// ImageConfig describes the sample application image.
type ImageConfig struct {
	// Repository is the image path without tag, e.g.
	// "myacr.azurecr.io/sample-app". Ignored when Override is set.
	Repository string `yaml:"repository,omitempty" mapstructure:"repository"`
	Tag        string `yaml:"tag,omitempty" mapstructure:"tag"`
	// Override is a full image reference taking precedence over
	// Repository:Tag.
	Override string `yaml:"override,omitempty" mapstructure:"override"`
}

// Reference resolves the image reference to deploy.
func (c ImageConfig) Reference() string {
	if c.Override != "" {
		return c.Override
	}
	tag := c.Tag
	if tag == "" {
		tag = DefaultImageTag
	}
	return c.Repository + ":" + tag
}

// FederatedSubject returns the OIDC subject string the federated credential
// must bind. Token exchange fails unless this matches the projected token's
// subject exactly.
func (c *Config) FederatedSubject() string {
	return "system:serviceaccount:" + c.ServiceAccount.Namespace + ":" + c.ServiceAccount.Name
}

// FederatedCredentialName names the federated credential on the identity.
// Lookups are by this name, so it has to be stable across runs.
func (c *Config) FederatedCredentialName() string {
	return c.Identity.Name + "-federation"
}
