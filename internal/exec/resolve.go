package exec

import (
	"context"
	"io"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	"github.com/cloudposse/tfmatrix/pkg/affected"
	"github.com/cloudposse/tfmatrix/pkg/changeset"
	"github.com/cloudposse/tfmatrix/pkg/ci"
	cfg "github.com/cloudposse/tfmatrix/pkg/config"
	"github.com/cloudposse/tfmatrix/pkg/git"
	"github.com/cloudposse/tfmatrix/pkg/github"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/perf"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

// ResolveParams carries everything needed to resolve a change set. It is built
// once by the command layer from flags and the process environment, so the
// code below never reads process state itself.
type ResolveParams struct {
	Config  *schema.Configuration
	Context ci.RevisionContext
	Range   ci.RangeOverrides

	// ChangedFilesPath is the newline-separated list read by the file source. "-" is stdin.
	ChangedFilesPath string
	// PatchFilePath is the unified diff read by the patch source. "-" is stdin.
	PatchFilePath string

	GitHubToken  string
	GitHubAPIURL string

	Stdin io.Reader
}

// Resolution is a change set grouped per taxonomy root.
type Resolution struct {
	ChangedPaths []string
	Aggregated   map[string]affected.Changes
}

// ProviderFactory creates the change-set provider selected by the configuration.
type ProviderFactory func(ctx context.Context, params *ResolveParams) (changeset.Provider, error)

// NewProvider returns the provider for params.Config.Changes.Source.
func NewProvider(ctx context.Context, params *ResolveParams) (changeset.Provider, error) {
	defer perf.Track(params.Config, "exec.NewProvider")()

	switch params.Config.Changes.Source {
	case cfg.SourceGit, "":
		return git.NewDiffProvider(params.Config.BasePath), nil
	case cfg.SourceFile:
		path := params.ChangedFilesPath
		if path == "" {
			path = "-"
		}
		return &changeset.FileProvider{Path: path, Stdin: params.Stdin}, nil
	case cfg.SourcePatch:
		path := params.PatchFilePath
		if path == "" {
			path = "-"
		}
		return &changeset.PatchProvider{Path: path, Stdin: params.Stdin}, nil
	case cfg.SourceGitHub:
		return newPullRequestProvider(ctx, params)
	default:
		return nil, errUtils.Build(errUtils.ErrInvalidChangeSource).
			WithHintf("Use one of: %s, %s, %s, %s", cfg.SourceGit, cfg.SourceGitHub, cfg.SourcePatch, cfg.SourceFile).
			WithContext("source", params.Config.Changes.Source).
			Err()
	}
}

func newPullRequestProvider(ctx context.Context, params *ResolveParams) (changeset.Provider, error) {
	if params.GitHubToken == "" {
		return nil, errUtils.Build(errUtils.ErrMissingGitHubToken).
			WithHint("Set GITHUB_TOKEN, or use --source git to diff the local checkout").
			Err()
	}

	owner, name := params.Context.RepoOwner, params.Context.RepoName
	if owner == "" || name == "" {
		repo, err := git.OpenRepo(params.Config.BasePath)
		if err != nil {
			return nil, err
		}
		info, err := git.GetRepoInfo(repo)
		if err != nil {
			return nil, err
		}
		owner, name = info.RepoOwner, info.RepoName
		log.Debug("Using repository from Git remote", "owner", owner, "repo", name)
	}

	client, err := github.NewClient(ctx, github.ClientOptions{
		Token:   params.GitHubToken,
		BaseURL: params.GitHubAPIURL,
	})
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrListPullRequestFile).
			WithCause(err).
			WithContext("api_url", params.GitHubAPIURL).
			Err()
	}
	provider := github.NewPullRequestFilesProvider(client, owner, name, params.Context.PullRequest)
	provider.Retry = &params.Config.GitHub.Retry
	return provider, nil
}

// ResolveChanges asks provider for the changed files of the run and groups them
// per taxonomy root. A provider failure is fatal.
func ResolveChanges(ctx context.Context, params *ResolveParams, provider changeset.Provider) (Resolution, error) {
	defer perf.Track(params.Config, "exec.ResolveChanges")()

	config := params.Config
	policy, err := changeset.ParsePolicy(config.Changes.Policy)
	if err != nil {
		return Resolution{}, err
	}
	rng := params.Context.Range(policy, params.Range)
	log.Debug("Resolving changed files",
		"source", config.Changes.Source, "policy", rng.Policy, "base", rng.Base, "head", rng.Head)

	files, err := provider.ChangedFiles(ctx, rng)
	if err != nil {
		return Resolution{}, errUtils.Build(errUtils.ErrChangedFiles).
			WithCause(err).
			WithHint("Check that the base revision is fetched, e.g. `actions/checkout` with `fetch-depth: 0`").
			WithContext("source", config.Changes.Source).
			WithContext("policy", string(rng.Policy)).
			WithContext("base", rng.Base).
			WithExitCode(1).
			Err()
	}
	files = affected.Filter(changeset.Unique(files), config.Changes.IgnorePatterns)
	log.Debug("Changed files", "count", len(files))

	res := Resolution{
		ChangedPaths: files,
		Aggregated:   make(map[string]affected.Changes, len(config.Taxonomy.Roots)),
	}
	for _, root := range config.Taxonomy.Roots {
		changes := affected.Aggregate(files, root)
		res.Aggregated[root] = changes
		log.Debug("Aggregated changes", "taxonomy_root", root, "environments", changes.Environments())
	}
	return res, nil
}

// MergeEnvironments flattens per-root changes into one environments view.
// Roots are visited in order, and an environment already taken by an earlier
// root is kept.
func MergeEnvironments(aggregated map[string]affected.Changes, roots []string) map[string]schema.EnvironmentView {
	defer perf.Track(nil, "exec.MergeEnvironments")()

	merged := map[string]schema.EnvironmentView{}
	owner := map[string]string{}
	for _, root := range roots {
		for env, view := range aggregated[root].View() {
			if first, exists := owner[env]; exists {
				log.Warn("Environment exists under more than one taxonomy root; keeping the first",
					"environment", env, "kept", first, "skipped", root)
				continue
			}
			owner[env] = root
			merged[env] = view
		}
	}
	return merged
}
