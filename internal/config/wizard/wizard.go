// Package wizard implements the interactive configuration flow for
// `akslab init`.
package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/akslab/internal/config"
)

// Result holds the user's choices from the wizard.
type Result struct {
	ResourceGroup  string
	Location       string
	StorageAccount string
	ClusterName    string
	NodeCount      int
	IdentityKind   config.IdentityKind
	CreateRegistry bool
	RegistryName   string
}

// Run walks the user through the lab configuration.
func Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Location:     config.DefaultLocation,
		NodeCount:    config.DefaultNodeCount,
		IdentityKind: config.IdentityManaged,
	}

	form := huh.NewForm(
		// Names
		huh.NewGroup(
			huh.NewInput().
				Title("Resource group").
				Description("All lab resources live in this group; cleanup deletes it").
				Placeholder("akslab-rg").
				Value(&result.ResourceGroup).
				Validate(validateResourceGroup),

			huh.NewInput().
				Title("Storage account name").
				Description("Globally unique, 3-24 lowercase letters and digits").
				Placeholder("akslabstore123").
				Value(&result.StorageAccount).
				Validate(ValidateStorageAccountName),

			huh.NewInput().
				Title("Cluster name").
				Placeholder("akslab-aks").
				Value(&result.ClusterName).
				Validate(validateClusterName),
		),

		// Region
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Description("Azure region for all resources").
				Options(
					huh.NewOption("East US 2", "eastus2"),
					huh.NewOption("West Europe", "westeurope"),
					huh.NewOption("North Europe", "northeurope"),
					huh.NewOption("Southeast Asia", "southeastasia"),
				).
				Value(&result.Location),
		),

		// Cluster size
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Node count").
				Description("Two nodes are enough for the lab's replicas").
				Options(
					huh.NewOption("1 node", 1),
					huh.NewOption("2 nodes", 2),
					huh.NewOption("3 nodes", 3),
				).
				Value(&result.NodeCount),
		),

		// Identity mode
		huh.NewGroup(
			huh.NewSelect[config.IdentityKind]().
				Title("Identity kind").
				Description("Managed identity is simpler; service principal shows the AD application path").
				Options(
					huh.NewOption("User-assigned managed identity", config.IdentityManaged),
					huh.NewOption("AD application / service principal", config.IdentityServicePrincipal),
				).
				Value(&result.IdentityKind),
		),

		// Registry
		huh.NewGroup(
			huh.NewConfirm().
				Title("Create a container registry?").
				Description("Without one, the sample app deploys from a prebuilt image").
				Value(&result.CreateRegistry),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Registry name").
				Description("Globally unique, 5-50 alphanumeric characters").
				Placeholder("akslabacr123").
				Value(&result.RegistryName).
				Validate(validateRegistryName),
		).WithHideFunc(func() bool { return !result.CreateRegistry }),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config with defaults applied.
func (r *Result) ToConfig() *config.Config {
	cfg := &config.Config{
		ResourceGroup: r.ResourceGroup,
		Location:      r.Location,
		Storage: config.StorageConfig{
			AccountName:   r.StorageAccount,
			ContainerName: config.DefaultContainerName,
			SKU:           config.DefaultStorageSKU,
		},
		Registry: config.RegistryConfig{
			Create: r.CreateRegistry,
			Attach: r.CreateRegistry,
			Name:   r.RegistryName,
			SKU:    config.DefaultRegistrySKU,
		},
		Cluster: config.ClusterConfig{
			Name:      r.ClusterName,
			NodeCount: int32(r.NodeCount),
			VMSize:    config.DefaultVMSize,
		},
		Identity: config.IdentityConfig{
			Kind:     r.IdentityKind,
			Name:     config.DefaultIdentityName,
			RoleName: config.DefaultRoleName,
		},
		ServiceAccount: config.ServiceAccountConfig{
			Namespace: config.DefaultNamespace,
			Name:      config.DefaultServiceAccount,
		},
		Image: config.ImageConfig{
			Repository: config.DefaultSampleRepository,
			Tag:        config.DefaultImageTag,
		},
	}
	return cfg
}

func validateResourceGroup(s string) error {
	if s == "" {
		return fmt.Errorf("resource group is required")
	}
	if len(s) > 90 {
		return fmt.Errorf("resource group must be 90 characters or less")
	}
	return nil
}

// ValidateStorageAccountName enforces Azure's storage account naming rules.
func ValidateStorageAccountName(s string) error {
	if len(s) < 3 || len(s) > 24 {
		return fmt.Errorf("storage account name must be 3-24 characters")
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
			return fmt.Errorf("storage account name can only contain lowercase letters and digits")
		}
	}
	return nil
}

func validateClusterName(s string) error {
	if s == "" {
		return fmt.Errorf("cluster name is required")
	}
	s = strings.ToLower(s)
	if len(s) > 63 {
		return fmt.Errorf("cluster name must be 63 characters or less")
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return fmt.Errorf("cluster name can only contain lowercase letters, numbers, and hyphens")
		}
	}
	return nil
}

func validateRegistryName(s string) error {
	if s == "" {
		return nil // hidden group may leave it empty
	}
	if len(s) < 5 || len(s) > 50 {
		return fmt.Errorf("registry name must be 5-50 characters")
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return fmt.Errorf("registry name can only contain alphanumeric characters")
		}
	}
	return nil
}
