package k8s

import (
	"bytes"
	"context"
	"fmt"
	"io"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/yaml"
	"k8s.io/client-go/dynamic"
)

// ApplyManifests applies multi-document YAML using Server-Side Apply.
// Each document is applied separately; empty documents are skipped.
func (c *client) ApplyManifests(ctx context.Context, manifests []byte) error {
	return c.eachDocument(manifests, func(obj *unstructured.Unstructured) error {
		if err := c.applyObject(ctx, obj); err != nil {
			return fmt.Errorf("failed to apply %s %s/%s: %w",
				obj.GetKind(), obj.GetNamespace(), obj.GetName(), err)
		}
		return nil
	})
}

// DeleteManifests deletes every object in the multi-document YAML.
// Objects that no longer exist are skipped.
func (c *client) DeleteManifests(ctx context.Context, manifests []byte) error {
	return c.eachDocument(manifests, func(obj *unstructured.Unstructured) error {
		if err := c.deleteObject(ctx, obj); err != nil && !apierrors.IsNotFound(err) {
			return fmt.Errorf("failed to delete %s %s/%s: %w",
				obj.GetKind(), obj.GetNamespace(), obj.GetName(), err)
		}
		return nil
	})
}

func (c *client) eachDocument(manifests []byte, fn func(*unstructured.Unstructured) error) error {
	decoder := yaml.NewYAMLOrJSONDecoder(bytes.NewReader(manifests), 4096)

	docIndex := 0
	for {
		var obj unstructured.Unstructured
		if err := decoder.Decode(&obj); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to decode manifest document %d: %w", docIndex, err)
		}

		// Skip empty documents (common in multi-doc YAML)
		if len(obj.Object) == 0 {
			docIndex++
			continue
		}

		if err := fn(&obj); err != nil {
			return err
		}
		docIndex++
	}

	return nil
}

func (c *client) applyObject(ctx context.Context, obj *unstructured.Unstructured) error {
	ri, namespaced, err := c.resourceFor(obj)
	if err != nil {
		return err
	}

	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal object to JSON: %w", err)
	}

	opts := metav1.PatchOptions{FieldManager: FieldManager}
	if namespaced {
		_, err = ri.Namespace(namespaceOrDefault(obj)).Patch(ctx, obj.GetName(), types.ApplyPatchType, data, opts)
	} else {
		_, err = ri.Patch(ctx, obj.GetName(), types.ApplyPatchType, data, opts)
	}
	if err != nil {
		return fmt.Errorf("server-side apply failed: %w", err)
	}
	return nil
}

func (c *client) deleteObject(ctx context.Context, obj *unstructured.Unstructured) error {
	ri, namespaced, err := c.resourceFor(obj)
	if err != nil {
		return err
	}

	if namespaced {
		return ri.Namespace(namespaceOrDefault(obj)).Delete(ctx, obj.GetName(), metav1.DeleteOptions{})
	}
	return ri.Delete(ctx, obj.GetName(), metav1.DeleteOptions{})
}

// resourceFor maps the object's GVK to a dynamic resource interface and
// reports whether the resource is namespaced.
func (c *client) resourceFor(obj *unstructured.Unstructured) (dynamic.NamespaceableResourceInterface, bool, error) {
	gvk := obj.GroupVersionKind()
	if gvk.Kind == "" {
		return nil, false, fmt.Errorf("object has no kind set")
	}

	mapping, err := c.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get REST mapping for %v: %w", gvk, err)
	}

	namespaced := mapping.Scope.Name() == meta.RESTScopeNameNamespace
	return c.dynamicClient.Resource(mapping.Resource), namespaced, nil
}

func namespaceOrDefault(obj *unstructured.Unstructured) string {
	if ns := obj.GetNamespace(); ns != "" {
		return ns
	}
	return "default"
}
