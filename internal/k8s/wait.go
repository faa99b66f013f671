package k8s

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
)

// WaitForRollout blocks until the deployment reports all replicas updated
// and available, or the timeout elapses.
func (c *client) WaitForRollout(ctx context.Context, namespace, name string, interval, timeout time.Duration) error {
	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		deployment, err := c.clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return false, nil
		}
		return isDeploymentReady(deployment), nil
	})
	if err != nil {
		return fmt.Errorf("deployment %s/%s did not become ready within %s: %w", namespace, name, timeout, err)
	}
	return nil
}

// ExternalIP polls the service until its load balancer reports an ingress
// address. On timeout the returned error wraps the poll failure; callers
// decide whether that is fatal.
func (c *client) ExternalIP(ctx context.Context, namespace, name string, interval, timeout time.Duration) (string, error) {
	var address string
	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		service, err := c.clientset.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return false, nil
		}
		address = ingressAddress(service)
		return address != "", nil
	})
	if err != nil {
		return "", fmt.Errorf("service %s/%s has no external address after %s: %w", namespace, name, timeout, err)
	}
	return address, nil
}

func isDeploymentReady(deployment *appsv1.Deployment) bool {
	if deployment.Spec.Replicas == nil {
		return false
	}
	// The controller has not seen the latest spec yet; counters below would
	// describe the previous generation.
	if deployment.Status.ObservedGeneration < deployment.Generation {
		return false
	}
	want := *deployment.Spec.Replicas
	if deployment.Status.UpdatedReplicas != want ||
		deployment.Status.Replicas != want ||
		deployment.Status.AvailableReplicas != want {
		return false
	}

	for _, condition := range deployment.Status.Conditions {
		if condition.Type == appsv1.DeploymentAvailable &&
			condition.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}

func ingressAddress(service *corev1.Service) string {
	for _, ingress := range service.Status.LoadBalancer.Ingress {
		if ingress.IP != "" {
			return ingress.IP
		}
		if ingress.Hostname != "" {
			return ingress.Hostname
		}
	}
	return ""
}
