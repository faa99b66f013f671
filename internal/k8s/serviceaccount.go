package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// EnsureServiceAccount creates the service account if absent, otherwise
// merges the given annotations and labels onto the existing object. Other
// metadata already on the account is preserved.
func (c *client) EnsureServiceAccount(ctx context.Context, namespace, name string, annotations, labels map[string]string) error {
	accounts := c.clientset.CoreV1().ServiceAccounts(namespace)

	existing, err := accounts.Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		sa := &corev1.ServiceAccount{
			ObjectMeta: metav1.ObjectMeta{
				Name:        name,
				Namespace:   namespace,
				Annotations: annotations,
				Labels:      labels,
			},
		}
		if _, err := accounts.Create(ctx, sa, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create service account %s/%s: %w", namespace, name, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get service account %s/%s: %w", namespace, name, err)
	}

	if existing.Annotations == nil {
		existing.Annotations = make(map[string]string, len(annotations))
	}
	for k, v := range annotations {
		existing.Annotations[k] = v
	}
	if existing.Labels == nil {
		existing.Labels = make(map[string]string, len(labels))
	}
	for k, v := range labels {
		existing.Labels[k] = v
	}

	if _, err := accounts.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update service account %s/%s: %w", namespace, name, err)
	}
	return nil
}
