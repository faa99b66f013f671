package provisioning

import (
	"context"

	"github.com/imamik/akslab/internal/config"
	"github.com/imamik/akslab/internal/k8s"
	"github.com/imamik/akslab/internal/platform/azure"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Azure    azure.Manager
	Observer Observer
	Timeouts *config.Timeouts

	// KubeFactory builds a Kubernetes client from kubeconfig bytes.
	// Tests substitute a fake.
	KubeFactory func(kubeconfig []byte) (k8s.Client, error)
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, azureClient azure.Manager) *Context {
	return &Context{
		Context:     ctx,
		Config:      cfg,
		State:       NewState(),
		Azure:       azureClient,
		Observer:    NewConsoleObserver(),
		Timeouts:    config.LoadTimeouts(),
		KubeFactory: k8s.NewFromKubeconfig,
	}
}

// KubeClient builds a Kubernetes client for the cluster whose kubeconfig
// the infrastructure phase stored in State.
func (c *Context) KubeClient() (k8s.Client, error) {
	return c.KubeFactory(c.State.Kubeconfig)
}
