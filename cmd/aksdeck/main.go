// Package main is the entry point for the aksdeck CLI.
//
// aksdeck is a command-line tool for provisioning a managed Kubernetes
// cluster and a container registry on Azure from a single declarative
// configuration file. It wires the cluster's kubelet identity to the
// registry so nodes can pull images without stored credentials.
//
// Commands: init, apply, outputs, destroy.
//
// For detailed usage information, run:
//
//	aksdeck --help
package main

import (
	"fmt"
	"os"

	"github.com/aksdeck/aksdeck/cmd/aksdeck/commands"
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
