package commands

import (
	"github.com/spf13/cobra"

	"github.com/aksdeck/aksdeck/cmd/aksdeck/handlers"
)

// Init returns the command that writes a starter configuration file.
//
// Flags:
//
//	--output, -o: Path to output file (default "aksdeck.yaml")
//	--force, -f: Overwrite an existing file
func Init() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration file",
		Long: `Create a commented starter configuration file.

The generated file declares a resource group, a managed cluster with a
single system node pool, and a container registry. Edit the names and the
location, then run 'aksdeck apply'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "aksdeck.yaml", "Output file path")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
