package git

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	giturl "github.com/kubescape/go-git-url"

	errUtils "github.com/cloudposse/tfmatrix/errors"
	log "github.com/cloudposse/tfmatrix/pkg/logger"
)

const defaultRemote = "origin"

// OpenRepo opens the repository containing path, searching parent directories
// for .git and following worktree links.
func OpenRepo(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: isWorktree(path),
	})
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrOpenRepository).
			WithCause(err).
			WithHint("Run tfmatrix inside a Git checkout, or use --source file|patch|github").
			WithContext("path", path).
			Err()
	}
	return repo, nil
}

// isWorktree reports whether path holds a .git file rather than a directory,
// as linked worktrees do.
func isWorktree(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && !info.IsDir()
}

// RepoInfo describes the repository's working tree and origin.
type RepoInfo struct {
	LocalWorktreePath string
	RepoUrl           string
	RepoOwner         string
	RepoName          string
	RepoHost          string
}

// GetRepoInfo returns the worktree root and the owner and name parsed from the
// origin remote, or from the first remote by name when there is no origin.
// A repository without remotes yields only the worktree path.
func GetRepoInfo(repo *git.Repository) (RepoInfo, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return RepoInfo{}, err
	}
	info := RepoInfo{LocalWorktreePath: worktree.Filesystem.Root()}

	cfg, err := repo.Config()
	if err != nil {
		return info, err
	}

	remote := pickRemote(cfg.Remotes)
	if remote == nil || len(remote.URLs) == 0 || remote.URLs[0] == "" {
		return info, nil
	}

	info.RepoUrl = remote.URLs[0]
	gitURL, err := giturl.NewGitURL(info.RepoUrl)
	if err != nil {
		log.Debug("Remote URL is not a recognized Git host", "url", info.RepoUrl, "err", err)
		return info, nil
	}
	info.RepoOwner = gitURL.GetOwnerName()
	info.RepoName = gitURL.GetRepoName()
	info.RepoHost = gitURL.GetHostName()
	return info, nil
}

func pickRemote(remotes map[string]*config.RemoteConfig) *config.RemoteConfig {
	if r, ok := remotes[defaultRemote]; ok {
		return r
	}
	names := make([]string, 0, len(remotes))
	for name := range remotes {
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil
	}
	slices.Sort(names)
	return remotes[names[0]]
}
