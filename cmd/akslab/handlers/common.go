// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/imamik/akslab/internal/config"
	"github.com/imamik/akslab/internal/envstate"
	"github.com/imamik/akslab/internal/platform/azure"
	"github.com/imamik/akslab/internal/provisioning"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newAzureClient creates the Azure management client.
	newAzureClient = func(subscriptionID string) (azure.Manager, error) {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build Azure credential: %w", err)
		}
		return azure.NewRealClient(subscriptionID, cred, config.LoadTimeouts().PollFrequency)
	}

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	// runPhases executes provisioning phases.
	runPhases = provisioning.RunPhases

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// findConfigFile finds the default config file (for testing injection).
	findConfigFile = config.FindConfigFile

	// openState opens the KEY=VALUE state file (for testing injection).
	openState = envstate.Open

	// lookupEnv reads environment variables (for testing injection).
	lookupEnv = os.LookupEnv
)

// loadConfig loads and validates the lab configuration.
// If configPath is empty, it looks for akslab.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'akslab init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveSubscription picks the Azure subscription: the config wins,
// otherwise AZURE_SUBSCRIPTION_ID from the environment.
func resolveSubscription(cfg *config.Config) (string, error) {
	if cfg.SubscriptionID != "" {
		return cfg.SubscriptionID, nil
	}
	if v, ok := lookupEnv("AZURE_SUBSCRIPTION_ID"); ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("no subscription configured: set subscription_id in the config or export AZURE_SUBSCRIPTION_ID")
}

// newLabContext builds the provisioning context every lab command shares.
func newLabContext(ctx context.Context, cfg *config.Config) (*provisioning.Context, error) {
	subscription, err := resolveSubscription(cfg)
	if err != nil {
		return nil, err
	}

	client, err := newAzureClient(subscription)
	if err != nil {
		return nil, err
	}

	return newProvisioningContext(ctx, cfg, client), nil
}

// persistState upserts the given pairs into the lab state file. Pairs with
// empty values are skipped so unresolved outputs never land in the file.
func persistState(cfg *config.Config, pairs [][2]string) error {
	store, err := openState(cfg.StateFile)
	if err != nil {
		return err
	}

	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		store.Set(p[0], p[1])
	}

	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to persist lab state: %w", err)
	}
	return nil
}
