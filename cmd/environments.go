package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/cloudposse/tfmatrix/internal/exec"
)

// newEnvironmentsExec is replaced in tests.
var newEnvironmentsExec = e.NewEnvironmentsExec

// environmentsCmd lists the changed environments with their build paths.
var environmentsCmd = &cobra.Command{
	Use:     "environments",
	Short:   "List changed environments with their account, region, role and build paths",
	Example: "tfmatrix environments --changed-files changed.txt",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags, err := parseChangeFlags(cmd.Flags())
		if err != nil {
			return err
		}

		return newEnvironmentsExec().Execute(cmd.Context(), &e.EnvironmentsCmdArgs{
			Params:           resolveParams(flags),
			OutputFile:       flags.file,
			GithubOutputFile: flags.githubOutputFile,
		})
	},
}

func init() {
	addChangeFlags(environmentsCmd)
}
