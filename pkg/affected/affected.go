// Package affected aggregates changed paths into per-environment change records.
package affected

import (
	"github.com/bmatcuk/doublestar/v4"

	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/perf"
	"github.com/cloudposse/tfmatrix/pkg/schema"
	"github.com/cloudposse/tfmatrix/pkg/taxonomy"
)

// Changes maps an environment name to its aggregated change.
type Changes map[string]*schema.EnvironmentChange

type options struct {
	ignorePatterns []string
}

// Option configures Aggregate.
type Option func(*options)

// WithIgnorePatterns drops changed paths matching any of the doublestar patterns
// before classification.
func WithIgnorePatterns(patterns ...string) Option {
	return func(o *options) {
		o.ignorePatterns = append(o.ignorePatterns, patterns...)
	}
}

// Aggregate classifies every changed path under taxonomyRoot and groups the
// results by environment. Unclassifiable paths are skipped.
//
// The first record seen for an environment fixes its class, account, region and
// role ARN; later records only add build paths. The set of build paths does not
// depend on input order, but which record wins does when an environment's paths
// disagree on account or region.
func Aggregate(changedPaths []string, taxonomyRoot string, opts ...Option) Changes {
	defer perf.Track(nil, "affected.Aggregate")()

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	changes := Changes{}
	for _, p := range changedPaths {
		if isIgnored(p, o.ignorePatterns) {
			log.Debug("Ignoring changed path", "path", p)
			continue
		}

		record, ok := taxonomy.Classify(p, taxonomyRoot)
		if !ok {
			log.Trace("Path is outside the taxonomy", "path", p, "taxonomy_root", taxonomyRoot)
			continue
		}

		change, exists := changes[record.Environment]
		if !exists {
			change = schema.NewEnvironmentChange(taxonomyRoot, record, taxonomy.DeriveRoleArn(record.Account))
			changes[record.Environment] = change
			log.Debug("Environment affected", "environment", record.Environment, "taxonomy_root", taxonomyRoot)
		} else if change.Account != record.Account || change.Region != record.Region || change.ClassType != record.ClassType {
			log.Warn("Environment spans more than one class, account or region; keeping the first seen",
				"environment", record.Environment,
				"kept", change.ClassType+"/"+change.Account+"/"+change.Region,
				"path", p,
			)
		}

		change.AddBuildPath(record.BuildPath)
	}

	return changes
}

// Environments returns the environment names in lexical order.
func (c Changes) Environments() []string {
	return sortedKeys(c)
}

// View returns the environments JSON view of the changes.
func (c Changes) View() map[string]schema.EnvironmentView {
	view := make(map[string]schema.EnvironmentView, len(c))
	for env, change := range c {
		view[env] = change.View()
	}
	return view
}

// Filter returns the paths that match none of the doublestar patterns, in
// input order.
func Filter(paths []string, patterns []string) []string {
	if len(patterns) == 0 {
		return paths
	}
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if !isIgnored(p, patterns) {
			kept = append(kept, p)
		}
	}
	return kept
}

func isIgnored(p string, patterns []string) bool {
	normalized := taxonomy.Normalize(p)
	for _, pattern := range patterns {
		// Patterns are validated when the configuration loads.
		if matched, _ := doublestar.Match(pattern, normalized); matched {
			return true
		}
	}
	return false
}
