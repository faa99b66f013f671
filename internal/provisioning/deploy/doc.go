// Package deploy renders the sample application manifests and applies them
// to the cluster.
//
// The rollout wait is hard: a deployment that never becomes ready fails the
// phase. The external address wait is soft: a load balancer that takes too
// long only logs a warning, since the address usually arrives minutes later
// and nothing downstream depends on it.
package deploy
