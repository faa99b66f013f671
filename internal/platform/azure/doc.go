// Package azure provides a typed client for the Azure operations the lab
// performs: resource groups, storage accounts, container registries, AKS
// clusters, workload identities, federated credentials, and role
// assignments.
//
// The package exposes a [Manager] interface with a real implementation over
// the Azure SDK ARM and Graph clients and an in-memory [MockManager] for
// tests. Every Ensure* operation is idempotent: it checks for the resource
// by name before creating and reuses what already exists. Errors from the
// control plane are classified (not found, conflict, transient propagation)
// so callers can dispatch retry policy on error kind instead of treating
// every failure alike.
package azure
