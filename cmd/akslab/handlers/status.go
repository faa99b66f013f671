package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/akslab/internal/config"
)

// Status prints the recorded lab state and, when the cluster is reachable,
// the live sample-app deployment and service state. Live lookups are best
// effort: a missing cluster or workload is reported, never an error.
func Status(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	store, err := openState(cfg.StateFile)
	if err != nil {
		return err
	}

	keys := store.Keys()
	if len(keys) == 0 {
		fmt.Printf("No lab state recorded in %s yet. Run 'akslab infra' to get started.\n", cfg.StateFile)
	} else {
		fmt.Printf("Recorded state (%s):\n", cfg.StateFile)
		for _, key := range keys {
			value, _ := store.Get(key)
			fmt.Printf("  %s=%s\n", key, value)
		}
	}

	fmt.Println()
	printLiveStatus(ctx, cfg)
	return nil
}

// printLiveStatus queries the cluster for the sample-app deployment and
// service.
func printLiveStatus(ctx context.Context, cfg *config.Config) {
	pCtx, err := newLabContext(ctx, cfg)
	if err != nil {
		fmt.Printf("Live status unavailable: %v\n", err)
		return
	}

	kubeconfig, err := pCtx.Azure.ClusterCredentials(pCtx, cfg.ResourceGroup, cfg.Cluster.Name)
	if err != nil {
		fmt.Printf("Cluster %s unreachable: %v\n", cfg.Cluster.Name, err)
		return
	}
	pCtx.State.Kubeconfig = kubeconfig

	kube, err := pCtx.KubeClient()
	if err != nil {
		fmt.Printf("Live status unavailable: %v\n", err)
		return
	}

	workload, err := kube.WorkloadStatus(pCtx, cfg.ServiceAccount.Namespace, config.DefaultSampleAppName)
	if err != nil {
		fmt.Printf("Sample app not deployed yet. Run 'akslab deploy' after the identity lab.\n")
		return
	}

	fmt.Printf("Sample app (%s/%s):\n", cfg.ServiceAccount.Namespace, config.DefaultSampleAppName)
	fmt.Printf("  Replicas:  %d/%d ready\n", workload.ReadyReplicas, workload.DesiredReplicas)
	fmt.Printf("  Available: %t\n", workload.Available)
	if workload.ExternalAddress != "" {
		fmt.Printf("  URL:       http://%s:8080\n", workload.ExternalAddress)
	} else {
		fmt.Printf("  URL:       external address pending\n")
	}
}
