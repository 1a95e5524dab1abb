package schema

import "slices"

// TaxonomyRecord is the classification of one changed path.
type TaxonomyRecord struct {
	ClassType   string
	Environment string
	Account     string
	Region      string
	// BuildPath is the directory holding the deployable unit the path belongs to.
	BuildPath string
}

// EnvironmentChange aggregates every classified path of one environment.
//
// ClassType, Account, Region and RoleArn are captured from the first record
// seen for the environment and never change afterwards. An environment whose
// paths disagree on account or region is outside the taxonomy's assumptions;
// the first record wins and the rest only contribute build paths.
type EnvironmentChange struct {
	TaxonomyRoot string
	Environment  string
	ClassType    string
	Account      string
	Region       string
	RoleArn      string
	BuildPaths   map[string]struct{}
}

// EnvironmentView is the per-environment JSON shape consumed by CI.
type EnvironmentView struct {
	Region       string   `json:"region"`
	Account      string   `json:"account"`
	RoleArn      string   `json:"role_arn"`
	Class        string   `json:"class"`
	TfBuildPaths []string `json:"tf_build_paths,omitempty"`
}

// NewEnvironmentChange seeds an EnvironmentChange from the first record observed
// for an environment.
func NewEnvironmentChange(taxonomyRoot string, record *TaxonomyRecord, roleArn string) *EnvironmentChange {
	return &EnvironmentChange{
		TaxonomyRoot: taxonomyRoot,
		Environment:  record.Environment,
		ClassType:    record.ClassType,
		Account:      record.Account,
		Region:       record.Region,
		RoleArn:      roleArn,
		BuildPaths:   map[string]struct{}{},
	}
}

// AddBuildPath records a build path; duplicates collapse.
func (c *EnvironmentChange) AddBuildPath(path string) {
	if c.BuildPaths == nil {
		c.BuildPaths = map[string]struct{}{}
	}
	c.BuildPaths[path] = struct{}{}
}

// SortedBuildPaths returns the build paths in lexical order.
func (c *EnvironmentChange) SortedBuildPaths() []string {
	paths := make([]string, 0, len(c.BuildPaths))
	for p := range c.BuildPaths {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// View returns the JSON shape of the change.
func (c *EnvironmentChange) View() EnvironmentView {
	return EnvironmentView{
		Region:       c.Region,
		Account:      c.Account,
		RoleArn:      c.RoleArn,
		Class:        c.ClassType,
		TfBuildPaths: c.SortedBuildPaths(),
	}
}
