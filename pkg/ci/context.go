// Package ci reads the revision context of a CI run and writes CI outputs.
package ci

import (
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/perf"
)

// GitHub Actions event names.
const (
	EventPullRequest       = "pull_request"
	EventPullRequestTarget = "pull_request_target"
	EventPush              = "push"
)

// zeroSHA is the before SHA GitHub reports for the first push of a branch.
const zeroSHA = "0000000000000000000000000000000000000000"

// RevisionContext describes the revisions a CI run is about. It is built once,
// from the environment and flags, and passed down explicitly.
type RevisionContext struct {
	EventName   string
	BaseRef     string
	HeadRef     string
	BaseSHA     string
	HeadSHA     string
	BeforeSHA   string
	Repository  string
	RepoOwner   string
	RepoName    string
	PullRequest int
}

// IsPullRequest reports whether the run was triggered by a pull request.
func (c RevisionContext) IsPullRequest() bool {
	return c.EventName == EventPullRequest || c.EventName == EventPullRequestTarget
}

// IsPush reports whether the run was triggered by a push.
func (c RevisionContext) IsPush() bool {
	return c.EventName == EventPush
}

// HasBeforeSHA reports whether the push carries a usable previous tip.
func (c RevisionContext) HasBeforeSHA() bool {
	return c.BeforeSHA != "" && c.BeforeSHA != zeroSHA
}

// IsGitHubActions reports whether getenv describes a GitHub Actions run.
func IsGitHubActions(getenv func(string) string) bool {
	return getenv("GITHUB_ACTIONS") == "true"
}

// githubEvent is the part of $GITHUB_EVENT_PATH that describes revisions.
type githubEvent struct {
	Before      string `json:"before"`
	After       string `json:"after"`
	Number      int    `json:"number"`
	PullRequest *struct {
		Number int `json:"number"`
		Base   struct {
			Ref string `json:"ref"`
			SHA string `json:"sha"`
		} `json:"base"`
		Head struct {
			Ref string `json:"ref"`
		} `json:"head"`
	} `json:"pull_request"`
}

// ContextFromEnv builds a RevisionContext from GitHub Actions environment
// variables and, when present, the event payload at $GITHUB_EVENT_PATH.
// Outside GitHub Actions the context is empty.
func ContextFromEnv(getenv func(string) string) RevisionContext {
	defer perf.Track(nil, "ci.ContextFromEnv")()

	if !IsGitHubActions(getenv) {
		return RevisionContext{}
	}

	ctx := RevisionContext{
		EventName:  getenv("GITHUB_EVENT_NAME"),
		BaseRef:    getenv("GITHUB_BASE_REF"),
		HeadRef:    getenv("GITHUB_HEAD_REF"),
		HeadSHA:    getenv("GITHUB_SHA"),
		Repository: getenv("GITHUB_REPOSITORY"),
	}
	if ctx.HeadRef == "" {
		ctx.HeadRef = getenv("GITHUB_REF_NAME")
	}

	if owner, name, ok := strings.Cut(ctx.Repository, "/"); ok {
		ctx.RepoOwner = owner
		ctx.RepoName = name
	}

	if ctx.IsPullRequest() {
		ctx.PullRequest = parsePRNumber(getenv("GITHUB_REF"), getenv("GITHUB_REF_NAME"))
	}

	if path := getenv("GITHUB_EVENT_PATH"); path != "" {
		applyEventPayload(&ctx, path)
	}
	return ctx
}

// parsePRNumber extracts the number from refs/pull/<number>/merge or <number>/merge.
func parsePRNumber(ref, refName string) int {
	if rest, ok := strings.CutPrefix(ref, "refs/pull/"); ok {
		if num, _, ok := strings.Cut(rest, "/"); ok {
			if n, err := strconv.Atoi(num); err == nil {
				return n
			}
		}
	}
	if num, ok := strings.CutSuffix(refName, "/merge"); ok {
		if n, err := strconv.Atoi(num); err == nil {
			return n
		}
	}
	return 0
}

func applyEventPayload(ctx *RevisionContext, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug("Cannot read GitHub event payload", "file", path, "err", err)
		return
	}

	var event githubEvent
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &event); err != nil {
		log.Debug("Cannot parse GitHub event payload", "file", path, "err", err)
		return
	}

	if ctx.IsPush() {
		ctx.BeforeSHA = event.Before
	}

	if pr := event.PullRequest; pr != nil {
		ctx.BaseSHA = pr.Base.SHA
		if pr.Base.Ref != "" {
			ctx.BaseRef = pr.Base.Ref
		}
		if pr.Head.Ref != "" {
			ctx.HeadRef = pr.Head.Ref
		}
		if pr.Number > 0 {
			ctx.PullRequest = pr.Number
		}
	} else if ctx.PullRequest == 0 && event.Number > 0 && ctx.IsPullRequest() {
		ctx.PullRequest = event.Number
	}
}
