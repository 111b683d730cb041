package commands

import (
	"github.com/spf13/cobra"

	"github.com/aksdeck/aksdeck/cmd/aksdeck/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command deletes the resource group, which removes every
// resource the deployment created, then clears the local run state.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the deployment and all associated resources",
		Long: `Destroy deletes the deployment's resource group on Azure.

Deleting the group removes every resource inside it:
  - The managed Kubernetes cluster and its node resource group
  - The container registry and its role assignments

The run state is cleared afterwards so a later apply starts fresh.

Example:
  aksdeck destroy -c aksdeck.yaml

WARNING: This operation is irreversible. All images and cluster data will be lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
