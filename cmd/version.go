package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cloudposse/tfmatrix/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the CLI version",
	Example: "tfmatrix version",
	Args:    cobra.NoArgs,
	// Printing the version must work without a valid configuration.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		silence(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tfmatrix %s on %s/%s\n", version.Version, runtime.GOOS, runtime.GOARCH)
	},
}
