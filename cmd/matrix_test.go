package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	e "github.com/cloudposse/tfmatrix/internal/exec"
	"github.com/cloudposse/tfmatrix/pkg/changeset"
	"github.com/cloudposse/tfmatrix/pkg/ci"
)

func TestMatrixCmd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := e.NewMockMatrixExec(ctrl)

	orig := newMatrixExec
	newMatrixExec = func() e.MatrixExec { return mock }
	t.Cleanup(func() { newMatrixExec = orig })

	outputPath := filepath.Join(t.TempDir(), "github_output")
	run := setupCmd(t, map[string]string{
		"GITHUB_ACTIONS":    "true",
		"GITHUB_EVENT_NAME": "pull_request",
		"GITHUB_BASE_REF":   "main",
		"GITHUB_REPOSITORY": "cloudposse/infra",
		"GITHUB_REF":        "refs/pull/7/merge",
		"GITHUB_OUTPUT":     outputPath,
		"GITHUB_TOKEN":      "token",
	})

	mock.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, a *e.MatrixCmdArgs) error {
			assert.Equal(t, outputPath, a.GithubOutputFile)
			assert.Equal(t, "matrix.json", a.OutputFile)
			assert.Equal(t, "token", a.Params.GitHubToken)
			assert.Equal(t, 7, a.Params.Context.PullRequest)
			assert.Equal(t, "cloudposse", a.Params.Context.RepoOwner)
			assert.Equal(t, ci.RangeOverrides{Head: "feature"}, a.Params.Range)
			assert.Equal(t, []string{"workloads", "legacy"}, a.Params.Config.Taxonomy.Roots)
			assert.Equal(t, []string{"**/*.md"}, a.Params.Config.Changes.IgnorePatterns)
			assert.Equal(t, string(changeset.PolicyAll), a.Params.Config.Changes.Policy)

			rng := a.Params.Context.Range(changeset.PolicyAuto, a.Params.Range)
			assert.Equal(t, changeset.RevisionRange{Base: "main", Head: "feature", Policy: changeset.PolicyMergeBase}, rng)
			return nil
		})

	err := run("matrix",
		"--taxonomy-root", "workloads", "--taxonomy-root", "legacy",
		"--ignore", "**/*.md",
		"--policy", "all",
		"--head", "feature",
		"--file", "matrix.json",
	)
	require.NoError(t, err)
}

func TestMatrixCmdExplicitGitHubOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := e.NewMockMatrixExec(ctrl)

	orig := newMatrixExec
	newMatrixExec = func() e.MatrixExec { return mock }
	t.Cleanup(func() { newMatrixExec = orig })

	run := setupCmd(t, map[string]string{"GITHUB_ACTIONS": "true", "GITHUB_OUTPUT": "/tmp/ignored"})

	mock.EXPECT().Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, a *e.MatrixCmdArgs) error {
			assert.Empty(t, a.GithubOutputFile)
			assert.Equal(t, "changed.txt", a.Params.ChangedFilesPath)
			assert.Equal(t, "file", a.Params.Config.Changes.Source)
			return errUtils.ErrChangedFiles
		})

	err := run("matrix", "--github-output", "", "--changed-files", "changed.txt")
	assert.ErrorIs(t, err, errUtils.ErrChangedFiles)
}

func TestMatrixCmdInvalidConfig(t *testing.T) {
	run := setupCmd(t, nil)

	err := run("matrix", "--policy", "sideways")
	assert.ErrorIs(t, err, errUtils.ErrInvalidConfig)

	err = run("matrix", "--changed-files", "a", "--patch-file", "b")
	assert.ErrorIs(t, err, errUtils.ErrConflictingFlags)
}
