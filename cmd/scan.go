package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/cloudposse/tfmatrix/internal/exec"
	"github.com/cloudposse/tfmatrix/pkg/ci"
)

// newScanExec is replaced in tests.
var newScanExec = e.NewScanExec

// scanCmd lists every environment in the taxonomy tree, changed or not.
var scanCmd = &cobra.Command{
	Use:     "scan",
	Short:   "List every environment found under the taxonomy roots",
	Example: "tfmatrix scan --file environments.json",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		file, err := flags.GetString("file")
		if err != nil {
			return err
		}
		githubOutput, err := flags.GetString("github-output")
		if err != nil {
			return err
		}
		if !flags.Changed("github-output") && ci.IsGitHubActions(getenv) {
			githubOutput = getenv("GITHUB_OUTPUT")
		}

		return newScanExec().Execute(cmd.Context(), &e.ScanCmdArgs{
			Config:           &cliConfig,
			OutputFile:       file,
			GithubOutputFile: githubOutput,
		})
	},
}

func init() {
	scanCmd.Flags().String("file", "", "Write the result to this file instead of stdout")
	scanCmd.Flags().String("github-output", "", "Append step outputs to this file (default $GITHUB_OUTPUT in GitHub Actions)")
}
