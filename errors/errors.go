package errors

import (
	"errors"
)

// Configuration errors.
var (
	ErrInvalidConfig        = errors.New("invalid tfmatrix configuration")
	ErrReadConfig           = errors.New("failed to read tfmatrix configuration")
	ErrInvalidLogLevel      = errors.New("invalid log level")
	ErrInvalidFormat        = errors.New("invalid output format")
	ErrInvalidChangeSource  = errors.New("invalid change source")
	ErrInvalidRevisionRange = errors.New("invalid revision policy")
	ErrConflictingFlags     = errors.New("conflicting flags")
)

// Change set errors. Any of these aborts the run: without a known change set
// there is no safe partial result.
var (
	ErrChangedFiles        = errors.New("failed to determine changed files")
	ErrOpenRepository      = errors.New("failed to open Git repository")
	ErrResolveRevision     = errors.New("failed to resolve Git revision")
	ErrNoMergeBase         = errors.New("no merge base between revisions")
	ErrReadChangedFileList = errors.New("failed to read changed file list")
	ErrParsePatch          = errors.New("failed to parse unified diff")
	ErrMissingGitHubToken  = errors.New("GitHub token is not set")
	ErrMissingPullRequest  = errors.New("pull request number is not known")
	ErrMissingRepository   = errors.New("GitHub repository is not known")
	ErrListPullRequestFile = errors.New("failed to list pull request files")
	// ErrMaxElapsedTime is returned when the retry budget runs out before an attempt succeeds.
	ErrMaxElapsedTime      = errors.New("retry timeout exceeded")
)

// Environment configuration errors. These are not fatal: the environment is
// dropped from the matrix with a warning.
var (
	ErrEnvironmentConfigNotFound = errors.New("environment configuration not found")
	ErrEnvironmentConfigInvalid  = errors.New("environment configuration is invalid")
)

// Output errors.
var (
	ErrEncodeOutput = errors.New("failed to encode output")
	ErrWriteOutput  = errors.New("failed to write output")
	ErrScanTaxonomy = errors.New("failed to scan taxonomy directory")
)
