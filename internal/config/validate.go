package config

import (
	"fmt"
	"regexp"
)

// Azure naming rules the lab most often trips over.
var (
	// Storage account: 3-24 lowercase letters and digits.
	storageAccountRegex = regexp.MustCompile(`^[a-z0-9]{3,24}$`)

	// Resource group: letters, digits, and a few separators; cannot end
	// with a period.
	resourceGroupRegex = regexp.MustCompile(`^[-\w.()]{0,89}[-\w()]$`)

	// DNS-1123 label for cluster, namespace, and service account names.
	dnsLabelRegex = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]{0,61}[a-z0-9])?$`)
)

// Validate checks the configuration for values Azure or Kubernetes would
// reject, so failures surface before any remote call.
func (c *Config) Validate() error {
	if c.ResourceGroup == "" {
		return fmt.Errorf("resource_group is required")
	}
	if !resourceGroupRegex.MatchString(c.ResourceGroup) {
		return fmt.Errorf("resource_group %q is not a valid Azure resource group name", c.ResourceGroup)
	}

	if c.Storage.AccountName == "" {
		return fmt.Errorf("storage.account_name is required")
	}
	if !storageAccountRegex.MatchString(c.Storage.AccountName) {
		return fmt.Errorf("storage.account_name %q must be 3-24 lowercase letters and digits", c.Storage.AccountName)
	}
	if !dnsLabelRegex.MatchString(c.Storage.ContainerName) {
		return fmt.Errorf("storage.container_name %q is not a valid container name", c.Storage.ContainerName)
	}

	if c.Cluster.Name == "" {
		return fmt.Errorf("cluster.name is required")
	}
	if !dnsLabelRegex.MatchString(c.Cluster.Name) {
		return fmt.Errorf("cluster.name %q must be a lowercase DNS label", c.Cluster.Name)
	}
	if c.Cluster.NodeCount < 1 {
		return fmt.Errorf("cluster.node_count must be at least 1, got %d", c.Cluster.NodeCount)
	}

	switch c.Identity.Kind {
	case IdentityManaged, IdentityServicePrincipal:
	default:
		return fmt.Errorf("identity.kind must be %q or %q, got %q",
			IdentityManaged, IdentityServicePrincipal, c.Identity.Kind)
	}

	if !dnsLabelRegex.MatchString(c.ServiceAccount.Namespace) {
		return fmt.Errorf("service_account.namespace %q must be a lowercase DNS label", c.ServiceAccount.Namespace)
	}
	if !dnsLabelRegex.MatchString(c.ServiceAccount.Name) {
		return fmt.Errorf("service_account.name %q must be a lowercase DNS label", c.ServiceAccount.Name)
	}

	if (c.Registry.Create || c.Registry.Attach) && c.Registry.Name == "" {
		return fmt.Errorf("registry.name is required when registry.create or registry.attach is set")
	}

	return nil
}
