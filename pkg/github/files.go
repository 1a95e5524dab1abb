package github

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/google/go-github/v59/github"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	"github.com/cloudposse/tfmatrix/pkg/changeset"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/perf"
	"github.com/cloudposse/tfmatrix/pkg/retry"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

const (
	// GitHub API pagination size.
	perPage = 100

	statusRenamed = "renamed"

	logFieldOwner = "owner"
	logFieldRepo  = "repo"
)

// PullRequestService is the subset of the GitHub pull request API used here.
//
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=files.go -destination=mock_files_test.go -package=github
type PullRequestService interface {
	ListFiles(ctx context.Context, owner string, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
}

// PullRequestFilesProvider lists the files changed by a pull request through
// the GitHub REST API. The revision range is ignored; the pull request defines it.
type PullRequestFilesProvider struct {
	Owner  string
	Repo   string
	Number int
	// Retry controls retries of failed page requests. Nil means retry.DefaultConfig.
	Retry *schema.RetryConfig

	pullRequests PullRequestService
}

// NewPullRequestFilesProvider returns a provider backed by client.
func NewPullRequestFilesProvider(client *github.Client, owner, repo string, number int) *PullRequestFilesProvider {
	return NewPullRequestFilesProviderWithService(client.PullRequests, owner, repo, number)
}

// NewPullRequestFilesProviderWithService returns a provider backed by a custom
// service, such as a mock.
func NewPullRequestFilesProviderWithService(prs PullRequestService, owner, repo string, number int) *PullRequestFilesProvider {
	return &PullRequestFilesProvider{Owner: owner, Repo: repo, Number: number, pullRequests: prs}
}

// ChangedFiles implements changeset.Provider. Renamed files contribute their
// previous name as well.
func (p *PullRequestFilesProvider) ChangedFiles(ctx context.Context, _ changeset.RevisionRange) ([]string, error) {
	defer perf.Track(nil, "github.PullRequestFilesProvider.ChangedFiles")()

	if p.Owner == "" || p.Repo == "" {
		return nil, errUtils.Build(errUtils.ErrMissingRepository).
			WithHint("Set GITHUB_REPOSITORY or run inside a repository with a GitHub origin").
			Err()
	}
	if p.Number <= 0 {
		return nil, errUtils.Build(errUtils.ErrMissingPullRequest).
			WithHint("--source github only works for pull_request events").
			Err()
	}

	log.Debug("Listing pull request files", logFieldOwner, p.Owner, logFieldRepo, p.Repo, "number", p.Number)

	var files []string
	opts := &github.ListOptions{PerPage: perPage}
	for {
		var (
			page []*github.CommitFile
			resp *github.Response
		)
		err := retry.WithPredicate(ctx, p.Retry, func() error {
			var err error
			page, resp, err = p.pullRequests.ListFiles(ctx, p.Owner, p.Repo, p.Number, opts)
			return err
		}, isTransient)
		if err != nil {
			return nil, errUtils.Build(errUtils.ErrListPullRequestFile).
				WithCause(err).
				WithContext(logFieldOwner, p.Owner).
				WithContext(logFieldRepo, p.Repo).
				WithContext("number", p.Number).
				Err()
		}

		for _, f := range page {
			if f.GetStatus() == statusRenamed {
				files = append(files, f.GetPreviousFilename())
			}
			files = append(files, f.GetFilename())
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return changeset.Unique(files), nil
}

// isTransient reports whether a failed API call may succeed when repeated:
// server errors, secondary rate limits and network timeouts.
func isTransient(err error) bool {
	var abuse *github.AbuseRateLimitError
	if errors.As(err, &abuse) {
		return true
	}
	var resp *github.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Response != nil && resp.Response.StatusCode >= http.StatusInternalServerError
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
