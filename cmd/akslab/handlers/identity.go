package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/akslab/internal/provisioning"
	"github.com/imamik/akslab/internal/provisioning/identity"
)

// Identity binds the workload identity federation.
//
// This function orchestrates the second lab: the cloud identity (managed
// identity or service principal, per config), its RBAC role at the storage
// account scope, the federated credential against the cluster's OIDC
// issuer, and the annotated Kubernetes service account. Facts recorded by
// 'akslab infra' are reused when present; anything missing is resolved from
// Azure directly.
func Identity(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Binding workload identity for cluster: %s", cfg.Cluster.Name)

	pCtx, err := newLabContext(ctx, cfg)
	if err != nil {
		return err
	}

	// Reuse the issuer recorded by the infra command; the phase resolves
	// it from the cluster when absent.
	if store, err := openState(cfg.StateFile); err == nil {
		if issuer, ok := store.Get("AKS_OIDC_ISSUER"); ok {
			pCtx.State.OIDCIssuerURL = issuer
		}
	}

	if err := runPhases(pCtx, []provisioning.Phase{identity.NewProvisioner()}); err != nil {
		return err
	}

	id := pCtx.State.Identity
	pairs := [][2]string{
		{"AKS_OIDC_ISSUER", pCtx.State.OIDCIssuerURL},
		{"IDENTITY_NAME", cfg.Identity.Name},
		{"IDENTITY_CLIENT_ID", id.ClientID},
		{"IDENTITY_PRINCIPAL_ID", id.PrincipalID},
		{"TENANT_ID", id.TenantID},
		{"SERVICE_ACCOUNT_NAMESPACE", cfg.ServiceAccount.Namespace},
		{"SERVICE_ACCOUNT_NAME", cfg.ServiceAccount.Name},
		{"FEDERATED_CREDENTIAL_NAME", cfg.FederatedCredentialName()},
	}
	if err := persistState(cfg, pairs); err != nil {
		return err
	}

	fmt.Printf("\nWorkload identity bound!\n")
	fmt.Printf("  Client ID: %s\n", id.ClientID)
	fmt.Printf("  Subject:   %s\n", cfg.FederatedSubject())
	fmt.Printf("\nNext: deploy the sample application with:\n")
	fmt.Printf("  akslab deploy\n")
	return nil
}
