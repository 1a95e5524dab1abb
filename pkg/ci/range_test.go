package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloudposse/tfmatrix/pkg/changeset"
)

func TestRange(t *testing.T) {
	pr := RevisionContext{EventName: EventPullRequest, BaseRef: "main", BaseSHA: "b1"}
	prNoRef := RevisionContext{EventName: EventPullRequest, BaseSHA: "b1"}
	push := RevisionContext{EventName: EventPush, BeforeSHA: "a1"}
	firstPush := RevisionContext{EventName: EventPush, BeforeSHA: zeroSHA}

	tests := []struct {
		name      string
		ctx       RevisionContext
		policy    changeset.Policy
		overrides RangeOverrides
		expected  changeset.RevisionRange
	}{
		{
			name:     "pull request",
			ctx:      pr,
			policy:   changeset.PolicyAuto,
			expected: changeset.RevisionRange{Base: "main", Policy: changeset.PolicyMergeBase},
		},
		{
			name:     "pull request without base ref",
			ctx:      prNoRef,
			policy:   changeset.PolicyAuto,
			expected: changeset.RevisionRange{Base: "b1", Policy: changeset.PolicyMergeBase},
		},
		{
			name:     "push with before",
			ctx:      push,
			policy:   changeset.PolicyAuto,
			expected: changeset.RevisionRange{Base: "a1", Policy: changeset.PolicyRange},
		},
		{
			name:     "first push of a branch",
			ctx:      firstPush,
			policy:   changeset.PolicyAuto,
			expected: changeset.RevisionRange{Policy: changeset.PolicyPreviousCommit},
		},
		{
			name:     "local run",
			policy:   "",
			expected: changeset.RevisionRange{Policy: changeset.PolicyPreviousCommit},
		},
		{
			name:      "explicit base wins",
			ctx:       push,
			policy:    changeset.PolicyAuto,
			overrides: RangeOverrides{Base: "origin/main", Head: "feature"},
			expected:  changeset.RevisionRange{Base: "origin/main", Head: "feature", Policy: changeset.PolicyMergeBase},
		},
		{
			name:      "explicit before",
			policy:    changeset.PolicyAuto,
			overrides: RangeOverrides{Before: "c1"},
			expected:  changeset.RevisionRange{Base: "c1", Policy: changeset.PolicyRange},
		},
		{
			name:     "explicit policy takes the context base",
			ctx:      pr,
			policy:   changeset.PolicyRange,
			expected: changeset.RevisionRange{Base: "main", Policy: changeset.PolicyRange},
		},
		{
			name:     "previous commit on push uses before",
			ctx:      push,
			policy:   changeset.PolicyPreviousCommit,
			expected: changeset.RevisionRange{Base: "a1", Policy: changeset.PolicyPreviousCommit},
		},
		{
			name:     "all ignores the base",
			ctx:      pr,
			policy:   changeset.PolicyAll,
			expected: changeset.RevisionRange{Policy: changeset.PolicyAll},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ctx.Range(tt.policy, tt.overrides))
		})
	}
}
