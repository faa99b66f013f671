package k8s

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Workload summarizes the live state of a deployment and its fronting
// service.
type Workload struct {
	DesiredReplicas int32
	ReadyReplicas   int32
	Available       bool
	ExternalAddress string
}

// WorkloadStatus reports the deployment's replica counts and the service's
// load-balancer address, without waiting for either.
func (c *client) WorkloadStatus(ctx context.Context, namespace, name string) (*Workload, error) {
	deployment, err := c.clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get deployment %s/%s: %w", namespace, name, err)
	}

	status := &Workload{
		ReadyReplicas: deployment.Status.AvailableReplicas,
		Available:     isDeploymentReady(deployment),
	}
	if deployment.Spec.Replicas != nil {
		status.DesiredReplicas = *deployment.Spec.Replicas
	}

	service, err := c.clientset.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		status.ExternalAddress = ingressAddress(service)
	}

	return status, nil
}
