package commands

import (
	"github.com/spf13/cobra"

	"github.com/aksdeck/aksdeck/cmd/aksdeck/handlers"
)

// Outputs returns the command that prints the deployment outputs.
//
// Outputs are projected from the stored run state; the command makes no
// remote calls and fails if the deployment has not fully converged yet.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect aksdeck.yaml)
//	--json: Emit outputs as a JSON object instead of key=value lines
func Outputs() *cobra.Command {
	var (
		configPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "outputs",
		Short: "Print the deployment outputs",
		Long: `Print the outputs of the last successful apply.

The outputs are read from the state backend, so this works offline. If the
deployment has not fully converged, the command fails instead of printing a
partial set.

Examples:
  # Print outputs as key=value lines
  aksdeck outputs

  # Print outputs as JSON, e.g. for pipeline consumption
  aksdeck outputs --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Outputs(cmd.Context(), configPath, asJSON)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: aksdeck.yaml)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit outputs as JSON")

	return cmd
}
