package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/tfmatrix/errors"
)

func TestOpenRepo(t *testing.T) {
	r := newTestRepo(t)
	r.write(readme, "hello")
	r.commit("initial")

	sub := filepath.Join(r.dir, "nested", "dir")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	repo, err := OpenRepo(sub)
	require.NoError(t, err)
	assert.NotNil(t, repo)

	_, err = OpenRepo(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrOpenRepository)
}

func TestGetRepoInfo(t *testing.T) {
	tests := []struct {
		name    string
		remotes map[string]string
		owner   string
		repo    string
		host    string
	}{
		{
			name:    "https origin",
			remotes: map[string]string{"origin": "https://github.com/cloudposse/infra.git"},
			owner:   "cloudposse", repo: "infra", host: "github.com",
		},
		{
			name:    "ssh origin",
			remotes: map[string]string{"origin": "git@github.com:cloudposse/infra.git"},
			owner:   "cloudposse", repo: "infra", host: "github.com",
		},
		{
			name: "origin preferred over others",
			remotes: map[string]string{
				"aaa":    "https://github.com/other/fork.git",
				"origin": "https://github.com/cloudposse/infra.git",
			},
			owner: "cloudposse", repo: "infra", host: "github.com",
		},
		{
			name:    "first remote by name without origin",
			remotes: map[string]string{"zzz": "https://github.com/z/z.git", "upstream": "https://github.com/u/u.git"},
			owner:   "u", repo: "u", host: "github.com",
		},
		{
			name: "no remotes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRepo(t)
			for name, url := range tt.remotes {
				_, err := r.repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
				require.NoError(t, err)
			}

			info, err := GetRepoInfo(r.repo)
			require.NoError(t, err)
			assert.NotEmpty(t, info.LocalWorktreePath)
			assert.Equal(t, tt.owner, info.RepoOwner)
			assert.Equal(t, tt.repo, info.RepoName)
			assert.Equal(t, tt.host, info.RepoHost)
		})
	}
}

func TestSubdirPrefix(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	prefix, err := subdirPrefix(root, root)
	require.NoError(t, err)
	assert.Empty(t, prefix)

	prefix, err = subdirPrefix(root, sub)
	require.NoError(t, err)
	assert.Equal(t, "a/b/", prefix)
}
