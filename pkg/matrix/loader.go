package matrix

import (
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
	"github.com/cloudposse/tfmatrix/pkg/schema"
)

// DefaultConfigFiles are searched when a YAMLConfigLoader has no patterns.
var DefaultConfigFiles = []string{
	"{root}/{class}/{environment}/config.yml",
	"{root}/{class}/{environment}/config.yaml",
	"{root}/{environment}/config.yml",
	"{root}/{environment}/config.yaml",
}

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE

// ConfigLoader returns the declarative config document of a changed environment.
type ConfigLoader interface {
	Load(taxonomyRoot string, change *schema.EnvironmentChange) (map[string]any, error)
}

// YAMLConfigLoader reads an environment's config from the first YAML document
// found among Patterns, relative to FS.
type YAMLConfigLoader struct {
	FS fs.FS
	// Patterns may use {root}, {class} and {environment} and doublestar globs.
	// When a glob matches several files the lexically first is used.
	Patterns []string
}

// NewYAMLConfigLoader returns a loader rooted at basePath.
func NewYAMLConfigLoader(basePath string, patterns []string) *YAMLConfigLoader {
	return &YAMLConfigLoader{FS: os.DirFS(basePath), Patterns: patterns}
}

// Load implements ConfigLoader.
func (l *YAMLConfigLoader) Load(taxonomyRoot string, change *schema.EnvironmentChange) (map[string]any, error) {
	patterns := l.Patterns
	if len(patterns) == 0 {
		patterns = DefaultConfigFiles
	}

	replacer := strings.NewReplacer(
		"{root}", taxonomyRoot,
		"{class}", change.ClassType,
		"{environment}", change.Environment,
	)

	tried := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		candidate := replacer.Replace(pattern)
		tried = append(tried, candidate)

		file, err := l.find(candidate)
		if err != nil {
			return nil, errUtils.Build(errUtils.ErrEnvironmentConfigInvalid).
				WithCause(err).
				WithContext("pattern", candidate).
				Err()
		}
		if file == "" {
			continue
		}

		log.Debug("Found environment config", "environment", change.Environment, "file", file)
		return l.read(file)
	}

	return nil, errUtils.Build(errUtils.ErrEnvironmentConfigNotFound).
		WithHintf("Create one of: %s", strings.Join(tried, ", ")).
		WithContext("environment", change.Environment).
		WithContext("taxonomy_root", taxonomyRoot).
		Err()
}

// find returns the file matched by pattern, or "" when nothing matches.
func (l *YAMLConfigLoader) find(pattern string) (string, error) {
	if !hasMeta(pattern) {
		info, err := fs.Stat(l.FS, pattern)
		if err != nil || info.IsDir() {
			return "", nil
		}
		return pattern, nil
	}

	matches, err := doublestar.Glob(l.FS, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	slices.Sort(matches)
	return matches[0], nil
}

func (l *YAMLConfigLoader) read(file string) (map[string]any, error) {
	data, err := fs.ReadFile(l.FS, file)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrEnvironmentConfigInvalid).
			WithCause(err).
			WithContext("file", file).
			Err()
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errUtils.Build(errUtils.ErrEnvironmentConfigInvalid).
			WithCause(err).
			WithHint("The environment config must be a YAML mapping").
			WithContext("file", file).
			Err()
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
