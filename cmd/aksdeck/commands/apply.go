package commands

import (
	"github.com/spf13/cobra"

	"github.com/aksdeck/aksdeck/cmd/aksdeck/handlers"
)

// Apply returns the command for provisioning the deployment.
//
// This command converges the declared resources in dependency order:
// resource group, then the managed cluster, then the container registry
// with its pull role grant.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect aksdeck.yaml)
//
// Environment variables:
//
//	AZURE_SUBSCRIPTION_ID: Azure subscription, if not set in the config file
func Apply() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the deployment",
		Long: `Create or update the declared Azure deployment.

This command provisions the resource group, the managed Kubernetes cluster,
and the container registry, and grants the cluster's kubelet identity pull
access on the registry.

Re-running apply is safe: resources that already match the configuration are
restored from state instead of re-submitted.

If no config file is specified, it looks for aksdeck.yaml in the current
directory. Use 'aksdeck init' to create a configuration file.

Examples:
  # Apply using aksdeck.yaml in the current directory
  aksdeck apply

  # Apply using a specific config file
  aksdeck apply -c production.yaml

  # Re-apply after configuration changes
  aksdeck apply`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: aksdeck.yaml)")

	return cmd
}
