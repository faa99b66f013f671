// Package identity binds a cloud identity to the workload's Kubernetes
// service account.
//
// It ensures the identity (managed identity or AD application), grants it
// the blob data role at the storage account scope, creates the federated
// credential for the cluster's OIDC issuer, and annotates the service
// account so the workload-identity webhook injects the projected token.
// Role assignment retries on directory propagation delays; everything else
// is a single idempotent pass.
package identity
