// Package main is the entry point for the akslab CLI.
//
// akslab walks through the AKS workload identity labs end to end:
// provisioning Azure infrastructure, binding a federated identity to a
// Kubernetes service account, and deploying a sample application that
// reaches Blob Storage without any stored secret.
//
// Commands: init, infra, identity, deploy, status, env, cleanup.
//
// For detailed usage information, run:
//
//	akslab --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/akslab/cmd/akslab/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
