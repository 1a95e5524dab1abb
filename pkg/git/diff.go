package git

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	"github.com/cloudposse/tfmatrix/pkg/changeset"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/perf"
)

const headRevision = "HEAD"

// DiffProvider computes changed files from the local Git history.
// Paths are returned relative to BasePath, and files outside BasePath are
// dropped, so BasePath may point below the repository root.
type DiffProvider struct {
	BasePath string
	// Repo overrides the repository opened from BasePath.
	Repo *git.Repository
}

// NewDiffProvider returns a provider for the repository containing basePath.
func NewDiffProvider(basePath string) *DiffProvider {
	return &DiffProvider{BasePath: basePath}
}

// ChangedFiles implements changeset.Provider.
//
// PolicyAuto compares with the merge base when a base is given and with the
// previous commit otherwise. PolicyPreviousCommit falls back to every tracked
// file when head has no parent.
func (p *DiffProvider) ChangedFiles(ctx context.Context, rng changeset.RevisionRange) ([]string, error) {
	defer perf.Track(nil, "git.DiffProvider.ChangedFiles")()

	repo, err := p.repo()
	if err != nil {
		return nil, err
	}

	head, err := resolveCommit(repo, rng.Head)
	if err != nil {
		return nil, err
	}

	policy := rng.Policy
	if policy == changeset.PolicyAuto || policy == "" {
		policy = changeset.PolicyPreviousCommit
		if rng.Base != "" {
			policy = changeset.PolicyMergeBase
		}
	}
	log.Debug("Computing changed files", "policy", policy, "base", rng.Base, "head", head.Hash.String())

	var files []string
	switch policy {
	case changeset.PolicyAll:
		files, err = trackedFiles(head)
	case changeset.PolicyMergeBase:
		files, err = diffMergeBase(ctx, repo, rng.Base, head)
	case changeset.PolicyRange:
		files, err = diffRange(ctx, repo, rng.Base, head)
	case changeset.PolicyPreviousCommit:
		files, err = diffPrevious(ctx, repo, rng.Base, head)
	default:
		err = errUtils.Build(errUtils.ErrInvalidRevisionRange).
			WithCause(errors.Newf("unknown policy %q", policy)).
			Err()
	}
	if err != nil {
		return nil, err
	}

	return p.relativize(repo, changeset.Unique(files))
}

func (p *DiffProvider) repo() (*git.Repository, error) {
	if p.Repo != nil {
		return p.Repo, nil
	}
	basePath := p.BasePath
	if basePath == "" {
		basePath = "."
	}
	return OpenRepo(basePath)
}

func diffMergeBase(ctx context.Context, repo *git.Repository, base string, head *object.Commit) ([]string, error) {
	if base == "" {
		return nil, missingBase(changeset.PolicyMergeBase)
	}
	baseCommit, err := resolveCommit(repo, base)
	if err != nil {
		return nil, err
	}

	bases, err := baseCommit.MergeBase(head)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrNoMergeBase).WithCause(err).Err()
	}
	if len(bases) == 0 {
		return nil, errUtils.Build(errUtils.ErrNoMergeBase).
			WithHint("Fetch enough history for both revisions, e.g. `actions/checkout` with `fetch-depth: 0`").
			WithContext("base", base).
			WithContext("head", head.Hash.String()).
			Err()
	}
	log.Debug("Resolved merge base", "base", base, "merge_base", bases[0].Hash.String())
	return diffCommits(ctx, bases[0], head)
}

func diffRange(ctx context.Context, repo *git.Repository, base string, head *object.Commit) ([]string, error) {
	if base == "" {
		return nil, missingBase(changeset.PolicyRange)
	}
	baseCommit, err := resolveCommit(repo, base)
	if err != nil {
		return nil, err
	}
	return diffCommits(ctx, baseCommit, head)
}

// diffPrevious compares head with base when given, or with head's first parent.
func diffPrevious(ctx context.Context, repo *git.Repository, base string, head *object.Commit) ([]string, error) {
	if base != "" {
		return diffRange(ctx, repo, base, head)
	}
	if head.NumParents() == 0 {
		log.Debug("Head has no parent, treating every tracked file as changed", "head", head.Hash.String())
		return trackedFiles(head)
	}
	parent, err := head.Parent(0)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrResolveRevision).
			WithCause(err).
			WithHint("The parent commit is missing; fetch with `fetch-depth: 2` or more").
			Err()
	}
	return diffCommits(ctx, parent, head)
}

// diffCommits lists the paths that differ between two commits. A renamed file
// contributes both names; a deleted file contributes its old name.
func diffCommits(ctx context.Context, from, to *object.Commit) ([]string, error) {
	fromTree, err := from.Tree()
	if err != nil {
		return nil, treeError(err, from)
	}
	toTree, err := to.Tree()
	if err != nil {
		return nil, treeError(err, to)
	}

	changes, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrChangedFiles).WithCause(err).Err()
	}

	files := make([]string, 0, len(changes))
	for _, change := range changes {
		files = append(files, change.From.Name, change.To.Name)
	}
	return files, nil
}

func trackedFiles(commit *object.Commit) ([]string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, treeError(err, commit)
	}

	var files []string
	err = tree.Files().ForEach(func(f *object.File) error {
		files = append(files, f.Name)
		return nil
	})
	if err != nil {
		return nil, treeError(err, commit)
	}
	return files, nil
}

// resolveCommit resolves rev as given, then as a remote-tracking branch of
// origin. An empty rev means HEAD.
func resolveCommit(repo *git.Repository, rev string) (*object.Commit, error) {
	if rev == "" {
		rev = headRevision
	}

	candidates := []string{rev, "refs/remotes/" + defaultRemote + "/" + rev, defaultRemote + "/" + rev}
	var lastErr error
	for _, candidate := range candidates {
		hash, err := repo.ResolveRevision(plumbing.Revision(candidate))
		if err != nil {
			lastErr = err
			continue
		}
		commit, err := repo.CommitObject(*hash)
		if err != nil {
			lastErr = err
			continue
		}
		return commit, nil
	}

	return nil, errUtils.Build(errUtils.ErrResolveRevision).
		WithCause(lastErr).
		WithHintf("Make sure `%s` exists locally; in CI fetch it first (e.g. `git fetch origin %s`)", rev, rev).
		WithContext("revision", rev).
		Err()
}

// relativize maps repository-relative paths onto BasePath.
func (p *DiffProvider) relativize(repo *git.Repository, files []string) ([]string, error) {
	if p.BasePath == "" || p.Repo != nil {
		return files, nil
	}

	info, err := GetRepoInfo(repo)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrOpenRepository).WithCause(err).Err()
	}
	prefix, err := subdirPrefix(info.LocalWorktreePath, p.BasePath)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrOpenRepository).WithCause(err).WithContext("path", p.BasePath).Err()
	}
	if prefix == "" {
		return files, nil
	}

	out := make([]string, 0, len(files))
	for _, f := range files {
		if rel, ok := strings.CutPrefix(f, prefix); ok {
			out = append(out, rel)
		}
	}
	return out, nil
}

// subdirPrefix returns basePath relative to root as a slash path ending in
// "/", or "" when basePath is the root.
func subdirPrefix(root, basePath string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return "", err
	}
	if r, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = r
	}
	if b, err := filepath.EvalSymlinks(absBase); err == nil {
		absBase = b
	}

	rel, err := filepath.Rel(absRoot, absBase)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel) + "/", nil
}

func missingBase(policy changeset.Policy) error {
	return errUtils.Build(errUtils.ErrInvalidRevisionRange).
		WithCause(errors.Newf("policy %s needs a base revision", policy)).
		WithHint("Pass --base or run inside a pull request workflow").
		Err()
}

func treeError(err error, commit *object.Commit) error {
	return errUtils.Build(errUtils.ErrChangedFiles).
		WithCause(err).
		WithContext("commit", commit.Hash.String()).
		Err()
}
