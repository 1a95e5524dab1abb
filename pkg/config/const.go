package config

import (
	"slices"

	"github.com/cloudposse/tfmatrix/pkg/matrix"
)

const (
	CliConfigFileName = "tfmatrix"
	// DotCliConfigDirName is the per-user config directory under $HOME.
	DotCliConfigDirName = ".tfmatrix"

	SystemDirConfigFilePath = "/usr/local/etc/tfmatrix"
	WindowsAppDataEnvVar    = "LOCALAPPDATA"

	EnvPrefix = "TFMATRIX"
	// CliConfigPathEnvVar points at a directory holding tfmatrix.yaml.
	CliConfigPathEnvVar = "TFMATRIX_CLI_CONFIG_PATH"

	DefaultBasePath     = "."
	DefaultTaxonomyRoot = "workloads"
	DefaultFileSuffix   = ".tf"
	DefaultSource       = SourceGit
	DefaultPolicy       = "auto"
	DefaultLogsLevel    = "Info"
	DefaultLogsFile     = "/dev/stderr"
)

// Change-set sources.
const (
	SourceGit    = "git"
	SourceGitHub = "github"
	SourcePatch  = "patch"
	SourceFile   = "file"
)

// DefaultConfigFiles are the patterns searched for an environment's config
// document. Class-scoped documents take precedence over environment-scoped ones.
var DefaultConfigFiles = slices.Clone(matrix.DefaultConfigFiles)
