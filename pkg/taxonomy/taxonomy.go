// Package taxonomy maps repository paths onto the
// <root>/<class>/<environment>/<account>/<region>/... directory layout.
package taxonomy

import (
	"path"
	"strings"

	"github.com/cloudposse/tfmatrix/pkg/schema"
)

const (
	// MinSegments is the taxonomy root, the four taxonomy segments and at least
	// one more segment below the region.
	MinSegments = 6

	// RootManifest marks the root of a deployable unit.
	RootManifest = "main.tf"
)

const (
	segmentRoot = iota
	segmentClass
	segmentEnvironment
	segmentAccount
	segmentRegion
)

// Classify returns the taxonomy record for p, or false when p has fewer than
// MinSegments segments or does not start with taxonomyRoot. It holds no state
// and is safe for concurrent use.
func Classify(p, taxonomyRoot string) (*schema.TaxonomyRecord, bool) {
	normalized := Normalize(p)
	segments := strings.Split(normalized, "/")
	if len(segments) < MinSegments || segments[segmentRoot] != taxonomyRoot {
		return nil, false
	}

	return &schema.TaxonomyRecord{
		ClassType:   segments[segmentClass],
		Environment: segments[segmentEnvironment],
		Account:     segments[segmentAccount],
		Region:      segments[segmentRegion],
		// A changed RootManifest identifies the module directory it sits in;
		// any other file identifies the directory containing it. Both are
		// the parent of the changed path.
		BuildPath: path.Dir(normalized),
	}, true
}

// Normalize converts p to a clean forward-slash repository path. Backslashes
// are treated as separators on every platform, since change lists may come
// from Windows tooling.
func Normalize(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}
