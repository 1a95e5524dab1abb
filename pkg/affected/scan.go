package affected

import (
	"io/fs"
	"path"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/perf"
	"github.com/cloudposse/tfmatrix/pkg/schema"
	"github.com/cloudposse/tfmatrix/pkg/taxonomy"
)

// Scan walks taxonomyRoot in fsys and describes every environment found on
// disk, changed or not. The first account directory and the first region
// directory below it, in lexical order, describe an environment; environments
// without either are skipped. Scanned changes carry no build paths.
func Scan(fsys fs.FS, taxonomyRoot string) (Changes, error) {
	defer perf.Track(nil, "affected.Scan")()

	classes, err := subdirs(fsys, taxonomyRoot)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrScanTaxonomy).
			WithCause(err).
			WithHintf("Run tfmatrix from the repository root or set --base-path so that `%s` is reachable", taxonomyRoot).
			WithContext("taxonomy_root", taxonomyRoot).
			Err()
	}

	changes := Changes{}
	for _, class := range classes {
		classPath := path.Join(taxonomyRoot, class)
		envs, err := subdirs(fsys, classPath)
		if err != nil {
			return nil, scanError(err, classPath)
		}

		for _, env := range envs {
			record, ok, err := scanEnvironment(fsys, classPath, class, env)
			if err != nil {
				return nil, err
			}
			if !ok {
				log.Debug("Skipping environment without account or region", "environment", env, "class", class)
				continue
			}
			if existing, seen := changes[env]; seen {
				log.Warn("Environment appears under more than one class; keeping the first",
					"environment", env, "kept", existing.ClassType, "ignored", class)
				continue
			}
			changes[env] = schema.NewEnvironmentChange(taxonomyRoot, record, taxonomy.DeriveRoleArn(record.Account))
		}
	}
	return changes, nil
}

func scanEnvironment(fsys fs.FS, classPath, class, env string) (*schema.TaxonomyRecord, bool, error) {
	envPath := path.Join(classPath, env)
	accounts, err := subdirs(fsys, envPath)
	if err != nil {
		return nil, false, scanError(err, envPath)
	}
	if len(accounts) == 0 {
		return nil, false, nil
	}

	accountPath := path.Join(envPath, accounts[0])
	regions, err := subdirs(fsys, accountPath)
	if err != nil {
		return nil, false, scanError(err, accountPath)
	}
	if len(regions) == 0 {
		return nil, false, nil
	}

	return &schema.TaxonomyRecord{
		ClassType:   class,
		Environment: env,
		Account:     accounts[0],
		Region:      regions[0],
	}, true, nil
}

// subdirs lists the directory names directly under dir, sorted.
func subdirs(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

func scanError(err error, dir string) error {
	return errUtils.Build(errUtils.ErrScanTaxonomy).
		WithCause(err).
		WithContext("dir", dir).
		Err()
}
