package ci

import (
	"github.com/cloudposse/tfmatrix/pkg/changeset"
)

// RangeOverrides are revisions given explicitly, typically on the command line.
type RangeOverrides struct {
	Base   string
	Head   string
	Before string
}

// Range turns the context into a revision range for policy.
//
// With PolicyAuto:
//   - an explicit base selects merge-base against it,
//   - a pull request selects merge-base against its base branch,
//   - a push with a known previous tip selects range before..head,
//   - anything else selects previous-commit, which lists every tracked file
//     when head has no parent.
//
// Head is the explicit head when given and HEAD otherwise, since HEAD is the
// tree that CI checked out.
func (c RevisionContext) Range(policy changeset.Policy, o RangeOverrides) changeset.RevisionRange {
	if o.Before != "" {
		c.BeforeSHA = o.Before
	}
	rng := changeset.RevisionRange{Head: o.Head, Policy: policy}

	switch policy {
	case changeset.PolicyAuto, "":
		switch {
		case o.Base != "":
			rng.Policy, rng.Base = changeset.PolicyMergeBase, o.Base
		case c.IsPullRequest() && c.pullRequestBase() != "":
			rng.Policy, rng.Base = changeset.PolicyMergeBase, c.pullRequestBase()
		case c.HasBeforeSHA():
			rng.Policy, rng.Base = changeset.PolicyRange, c.BeforeSHA
		default:
			rng.Policy = changeset.PolicyPreviousCommit
		}
	case changeset.PolicyAll:
	default:
		rng.Base = o.Base
		if rng.Base == "" {
			rng.Base = c.defaultBase()
		}
	}
	return rng
}

// pullRequestBase prefers the base branch, which DiffProvider also resolves
// as origin/<branch>, over the base SHA recorded when the event fired.
func (c RevisionContext) pullRequestBase() string {
	if c.BaseRef != "" {
		return c.BaseRef
	}
	return c.BaseSHA
}

func (c RevisionContext) defaultBase() string {
	if c.IsPullRequest() {
		return c.pullRequestBase()
	}
	if c.HasBeforeSHA() {
		return c.BeforeSHA
	}
	return ""
}
