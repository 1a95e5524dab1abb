// Package changeset defines how the set of changed files is obtained.
package changeset

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	errUtils "github.com/cloudposse/tfmatrix/errors"
)

// Policy selects which two revisions are compared.
type Policy string

const (
	// PolicyAuto picks a policy from the revision context.
	PolicyAuto Policy = "auto"
	// PolicyMergeBase compares merge-base(base, head) with head. Used for pull requests.
	PolicyMergeBase Policy = "merge-base"
	// PolicyPreviousCommit compares head~1 (or base, when given) with head. Used for pushes.
	PolicyPreviousCommit Policy = "previous-commit"
	// PolicyRange compares base with head directly.
	PolicyRange Policy = "range"
	// PolicyAll lists every tracked file at head.
	PolicyAll Policy = "all"
)

// Policies lists every valid policy.
var Policies = []Policy{PolicyAuto, PolicyMergeBase, PolicyPreviousCommit, PolicyRange, PolicyAll}

// ParsePolicy validates a policy name. An empty name means auto.
func ParsePolicy(name string) (Policy, error) {
	if name == "" {
		return PolicyAuto, nil
	}
	p := Policy(name)
	if !lo.Contains(Policies, p) {
		return "", errUtils.Build(errUtils.ErrInvalidRevisionRange).
			WithCause(errors.Newf("unknown policy %q", name)).
			WithHintf("Use one of: %s", strings.Join(lo.Map(Policies, func(p Policy, _ int) string { return string(p) }), ", ")).
			Err()
	}
	return p, nil
}

// RevisionRange is the pair of revisions to compare and how to compare them.
// Base and Head are branch names, tags or commit SHAs. An empty Head means HEAD.
type RevisionRange struct {
	Base   string
	Head   string
	Policy Policy
}

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE

// Provider returns the repository-relative paths changed in a revision range,
// including added, modified, renamed and deleted files.
type Provider interface {
	ChangedFiles(ctx context.Context, rng RevisionRange) ([]string, error)
}

// Unique drops empty and repeated paths, keeping the first occurrence.
func Unique(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
