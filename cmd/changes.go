package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	e "github.com/cloudposse/tfmatrix/internal/exec"
	"github.com/cloudposse/tfmatrix/pkg/ci"
	"github.com/cloudposse/tfmatrix/pkg/perf"
)

// getenv reads the process environment. Tests replace it.
var getenv = os.Getenv

// changeFlags are the flags shared by the commands that resolve a change set.
type changeFlags struct {
	base             string
	head             string
	before           string
	changedFiles     string
	patchFile        string
	pullRequest      int
	file             string
	githubOutputFile string
}

func addChangeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("source", "", "Where changed files come from: git, github, patch or file")
	flags.String("policy", "", "How base and head are compared: auto, merge-base, previous-commit, range or all")
	flags.String("base", "", "Base revision (branch, tag or SHA). Implies --policy merge-base when --policy is auto")
	flags.String("head", "", "Head revision (default HEAD)")
	flags.String("before", "", "Previous tip of the pushed branch, compared as before..head")
	flags.String("changed-files", "", "Read newline-separated changed files from this file ('-' for stdin). Implies --source file")
	flags.String("patch-file", "", "Read changed files from this unified diff ('-' for stdin). Implies --source patch")
	flags.Int("pull-request", 0, "Pull request number for --source github (default from the GitHub Actions event)")
	flags.StringSlice("ignore", nil, "Glob of changed paths to ignore (repeatable): --ignore '**/*.md'")
	flags.String("file", "", "Write the result to this file instead of stdout")
	flags.String("github-output", "", "Append step outputs to this file (default $GITHUB_OUTPUT in GitHub Actions)")
}

func parseChangeFlags(flags *pflag.FlagSet) (changeFlags, error) {
	var c changeFlags
	var err error

	for name, v := range map[string]*string{
		"base":          &c.base,
		"head":          &c.head,
		"before":        &c.before,
		"changed-files": &c.changedFiles,
		"patch-file":    &c.patchFile,
		"file":          &c.file,
		"github-output": &c.githubOutputFile,
	} {
		if *v, err = flags.GetString(name); err != nil {
			return c, err
		}
	}
	if c.pullRequest, err = flags.GetInt("pull-request"); err != nil {
		return c, err
	}

	if !flags.Changed("github-output") && ci.IsGitHubActions(getenv) {
		c.githubOutputFile = getenv("GITHUB_OUTPUT")
	}
	return c, nil
}

// resolveParams builds the parameter object handed to the executors. It is the
// only place that reads the process environment for change resolution.
func resolveParams(c changeFlags) e.ResolveParams {
	defer perf.Track(&cliConfig, "cmd.resolveParams")()

	revCtx := ci.ContextFromEnv(getenv)
	if c.pullRequest > 0 {
		revCtx.PullRequest = c.pullRequest
	}

	return e.ResolveParams{
		Config:  &cliConfig,
		Context: revCtx,
		Range: ci.RangeOverrides{
			Base:   c.base,
			Head:   c.head,
			Before: c.before,
		},
		ChangedFilesPath: c.changedFiles,
		PatchFilePath:    c.patchFile,
		GitHubToken:      getenv("GITHUB_TOKEN"),
		GitHubAPIURL:     getenv("GITHUB_API_URL"),
		Stdin:            os.Stdin,
	}
}
