package handlers

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/imamik/akslab/internal/config"
	"github.com/imamik/akslab/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = wizard.Run

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := result.ToConfig()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := writeFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("akslab - AKS workload identity lab")
	fmt.Println("==================================")
	fmt.Println()
	fmt.Println("This wizard creates a lab configuration with sensible defaults.")
	fmt.Println("Just answer a handful of questions.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	// Summary
	fmt.Println("Lab Summary")
	fmt.Println("-----------")
	fmt.Printf("  Resource group:  %s\n", cfg.ResourceGroup)
	fmt.Printf("  Region:          %s\n", cfg.Location)
	fmt.Printf("  Storage account: %s\n", cfg.Storage.AccountName)
	fmt.Printf("  AKS cluster:     %s (%d nodes)\n", cfg.Cluster.Name, cfg.Cluster.NodeCount)
	fmt.Printf("  Identity:        %s (%s)\n", cfg.Identity.Name, cfg.Identity.Kind)
	if cfg.Registry.Create {
		fmt.Printf("  Registry:        %s\n", cfg.Registry.Name)
	}
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Sign in and pick your subscription:")
	fmt.Println("     az login")
	fmt.Println("     export AZURE_SUBSCRIPTION_ID=<your-subscription>")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Work through the labs:")
	fmt.Println("     akslab infra")
	fmt.Println("     akslab identity")
	fmt.Println("     akslab deploy")
	fmt.Println()
}
