// Package provisioning provides shared types, interfaces, and orchestration
// for the workload-identity lab pipeline.
//
// # Subpackages
//
//   - infrastructure/ — resource group, storage account, registry, AKS cluster
//   - identity/ — cloud identity, role assignment, federated credential
//   - deploy/ — manifest rendering, apply, rollout and address waits
//   - destroy/ — resource cleanup and teardown
//
// # Core Types
//
// Context carries configuration, state, the Azure client, and the observer.
// Phase defines a provisioning step with Name() and Provision() methods.
// State accumulates results from each phase (resource IDs, issuer URL,
// identity, kubeconfig, external address).
package provisioning
