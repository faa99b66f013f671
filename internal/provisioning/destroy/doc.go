// Package destroy handles teardown of everything the lab created.
//
// Resources are deleted in dependency order: the sample-app Kubernetes
// objects first so the LoadBalancer releases its public IP, then the
// federated credential and the cloud identity, then the resource group.
// Resource group deletion is asynchronous and continues in Azure after the
// command returns.
package destroy
