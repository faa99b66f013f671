package identity

import (
	"fmt"

	"github.com/imamik/akslab/internal/platform/azure"
	"github.com/imamik/akslab/internal/provisioning"
	"github.com/imamik/akslab/internal/util/retry"
)

// AssignStorageRole grants the configured role to the identity at the
// storage account scope. A freshly created principal takes a while to
// replicate through the directory, so the assignment is retried on a fixed
// interval until it sticks or the attempt budget runs out.
func (p *Provisioner) AssignStorageRole(ctx *provisioning.Context) error {
	cfg := ctx.Config
	id := ctx.State.Identity
	if id == nil {
		return fmt.Errorf("no identity in state; run the identity step first")
	}

	return p.assignWithRetry(ctx, "storage role", ctx.State.StorageAccountID, cfg.Identity.RoleName, id.PrincipalID)
}

// AttachRegistry grants AcrPull to the kubelet identity at the registry
// scope so nodes can pull the sample image without image pull secrets.
func (p *Provisioner) AttachRegistry(ctx *provisioning.Context) error {
	cfg := ctx.Config
	if !cfg.Registry.Attach {
		return nil
	}
	if ctx.State.RegistryID == "" {
		reg, err := ctx.Azure.EnsureRegistry(ctx, cfg.ResourceGroup, cfg.Registry.Name, cfg.Location, cfg.Registry.SKU)
		if err != nil {
			return fmt.Errorf("resolving registry %s: %w", cfg.Registry.Name, err)
		}
		ctx.State.RegistryID = reg.ID
		ctx.State.RegistryLoginServer = reg.LoginServer
	}
	if ctx.State.KubeletPrincipalID == "" {
		provisioning.LogWarning(ctx.Observer, p.Name(), "cluster reports no kubelet identity; skipping registry attach")
		return nil
	}

	return p.assignWithRetry(ctx, "registry pull role", ctx.State.RegistryID, "AcrPull", ctx.State.KubeletPrincipalID)
}

// assignWithRetry performs the role assignment under the fixed-interval
// retry policy. Only transient classes (directory propagation, throttling,
// 5xx) are retried; anything else aborts immediately.
func (p *Provisioner) assignWithRetry(ctx *provisioning.Context, what, scope, roleName, principalID string) error {
	attempt := 0
	err := retry.Do(ctx, func() error {
		attempt++
		err := ctx.Azure.AssignRole(ctx, scope, roleName, principalID)
		if err == nil {
			return nil
		}
		if !azure.IsTransient(err) {
			return retry.Fatal(err)
		}
		provisioning.LogRetrying(ctx.Observer, p.Name(), what, attempt, err)
		return err
	},
		retry.WithMaxAttempts(ctx.Timeouts.RoleAssignAttempts),
		retry.WithInterval(ctx.Timeouts.RoleAssignInterval),
	)
	if err != nil {
		return fmt.Errorf("assigning %s %q: %w", what, roleName, err)
	}
	return nil
}
