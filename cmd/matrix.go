package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/cloudposse/tfmatrix/internal/exec"
)

// newMatrixExec is replaced in tests.
var newMatrixExec = e.NewMatrixExec

// matrixCmd builds the CI matrix for the changed environments.
var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Build the CI matrix for changed environments",
	Long: `Resolve the changed files, group them per environment and emit one matrix entry per environment
with its config.yml content plus terraform_path, environment and changed_files.`,
	Example: "tfmatrix matrix --base origin/main --github-output $GITHUB_OUTPUT",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags, err := parseChangeFlags(cmd.Flags())
		if err != nil {
			return err
		}

		return newMatrixExec().Execute(cmd.Context(), &e.MatrixCmdArgs{
			Params:           resolveParams(flags),
			OutputFile:       flags.file,
			GithubOutputFile: flags.githubOutputFile,
		})
	},
}

func init() {
	addChangeFlags(matrixCmd)
}
