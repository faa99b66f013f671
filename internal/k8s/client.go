// Package k8s wraps the Kubernetes API operations the lab needs: applying
// rendered manifests, annotating the workload service account, and waiting
// on rollout and load-balancer state.
package k8s

import (
	"context"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
)

// FieldManager identifies this tool in Server-Side Apply operations.
const FieldManager = "akslab"

// Client provides the Kubernetes operations the deploy and cleanup
// pipelines need.
type Client interface {
	// ApplyManifests applies multi-document YAML using Server-Side Apply.
	ApplyManifests(ctx context.Context, manifests []byte) error

	// DeleteManifests deletes every object named in the multi-document
	// YAML, ignoring objects that are already gone.
	DeleteManifests(ctx context.Context, manifests []byte) error

	// EnsureServiceAccount creates or updates a service account with the
	// given annotations and labels.
	EnsureServiceAccount(ctx context.Context, namespace, name string, annotations, labels map[string]string) error

	// WaitForRollout blocks until the deployment's replicas are updated,
	// available, and the Available condition is true, or the timeout
	// elapses.
	WaitForRollout(ctx context.Context, namespace, name string, interval, timeout time.Duration) error

	// ExternalIP polls the service until its load balancer reports an
	// ingress address, returning the address. On timeout it returns an
	// empty string and an error the caller may treat as non-fatal.
	ExternalIP(ctx context.Context, namespace, name string, interval, timeout time.Duration) (string, error)

	// WorkloadStatus reports the deployment's readiness and the service's
	// external address without waiting.
	WorkloadStatus(ctx context.Context, namespace, name string) (*Workload, error)
}

type client struct {
	clientset     kubernetes.Interface
	dynamicClient dynamic.Interface
	mapper        meta.RESTMapper
}

// NewFromKubeconfig creates a Client from kubeconfig bytes, avoiding a
// round-trip through a temporary file.
func NewFromKubeconfig(kubeconfig []byte) (Client, error) {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST config from kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	groupResources, err := restmapper.GetAPIGroupResources(discoveryClient)
	if err != nil {
		return nil, fmt.Errorf("failed to get API group resources: %w", err)
	}
	mapper := restmapper.NewDiscoveryRESTMapper(groupResources)

	return &client{
		clientset:     clientset,
		dynamicClient: dynamicClient,
		mapper:        mapper,
	}, nil
}

// NewFromClients creates a Client from pre-configured clients. Used by
// tests with fake clientsets.
func NewFromClients(clientset kubernetes.Interface, dynamicClient dynamic.Interface, mapper meta.RESTMapper) Client {
	return &client{
		clientset:     clientset,
		dynamicClient: dynamicClient,
		mapper:        mapper,
	}
}
