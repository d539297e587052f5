// Package main is the entry point for the eksstack CLI.
//
// eksstack declares the desired state of an application stack on AWS: a
// network, an EKS cluster with managed node pools, a MySQL database, a
// shared file system and a Redis cache. It validates the declaration,
// renders it for an external resolver and publishes it to S3. It never
// calls the cloud provider APIs that create resources.
//
// Commands: init, validate, synth, outputs, diff, publish.
//
// For detailed usage information, run:
//
//	eksstack --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/eksstack/cmd/eksstack/commands"
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
