// Package infrastructure provisions the lab's Azure resources.
//
// It creates the resource group, the storage account with its blob
// container, an optional container registry, and the AKS cluster with the
// OIDC issuer and workload identity enabled. All resources are created
// idempotently: an existing resource is reused, never recreated.
package infrastructure
