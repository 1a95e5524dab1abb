// Package matrix turns aggregated environment changes into CI matrix entries.
package matrix

import (
	"fmt"
	"strings"

	"github.com/cloudposse/tfmatrix/pkg/affected"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/perf"
	"github.com/cloudposse/tfmatrix/pkg/schema"
	"github.com/cloudposse/tfmatrix/pkg/taxonomy"
)

// DefaultFileSuffix selects the changed files listed in changed_files.
const DefaultFileSuffix = ".tf"

// Warning records an environment left out of the matrix.
type Warning struct {
	TaxonomyRoot string
	Environment  string
	Err          error
}

func (w Warning) String() string {
	return fmt.Sprintf("skipping %s/%s: %v", w.TaxonomyRoot, w.Environment, w.Err)
}

type options struct {
	fileSuffix string
}

// Option configures Build.
type Option func(*options)

// WithFileSuffix selects which changed files are listed in changed_files.
func WithFileSuffix(suffix string) Option {
	return func(o *options) {
		o.fileSuffix = suffix
	}
}

// Build produces one matrix entry per changed environment that has a config
// document. Roots are visited in the given order and environments by name.
// Environments whose config cannot be loaded, or is empty, are left out and
// reported as warnings.
func Build(
	aggregated map[string]affected.Changes,
	taxonomyRoots []string,
	loader ConfigLoader,
	changedPaths []string,
	opts ...Option,
) (schema.MatrixResult, []Warning) {
	defer perf.Track(nil, "matrix.Build")()

	o := options{fileSuffix: DefaultFileSuffix}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		result   schema.MatrixResult
		warnings []Warning
	)
	for _, root := range taxonomyRoots {
		changes := aggregated[root]
		for _, env := range changes.Environments() {
			change := changes[env]

			config, err := loader.Load(root, change)
			if err == nil && len(config) == 0 {
				err = errEmptyConfig
			}
			if err != nil {
				w := Warning{TaxonomyRoot: root, Environment: env, Err: err}
				log.Warn("Skipping environment due to missing or invalid configuration",
					"taxonomy_root", root, "environment", env, "err", err)
				warnings = append(warnings, w)
				continue
			}

			result.Include = append(result.Include, schema.MatrixEntry{
				Config:        config,
				TerraformPath: root,
				Environment:   env,
				ChangedFiles:  changedFilesUnder(changedPaths, environmentPrefix(root, change), o.fileSuffix),
			})
		}
	}

	result.HasChanges = len(result.Include) > 0
	if !result.HasChanges {
		log.Info("No changes detected in any environment")
	}
	return result, warnings
}

func environmentPrefix(root string, change *schema.EnvironmentChange) string {
	return root + "/" + change.ClassType + "/" + change.Environment + "/"
}

// changedFilesUnder keeps the paths below prefix that end in suffix, in input
// order. The result is never nil.
func changedFilesUnder(paths []string, prefix, suffix string) []string {
	files := []string{}
	for _, p := range paths {
		normalized := taxonomy.Normalize(p)
		if strings.HasPrefix(normalized, prefix) && strings.HasSuffix(normalized, suffix) {
			files = append(files, normalized)
		}
	}
	return files
}
