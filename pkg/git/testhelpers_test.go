package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// testRepo is a throwaway repository with a working tree in a temp dir.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	tick int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) write(path, content string) {
	r.t.Helper()
	full := filepath.Join(r.dir, filepath.FromSlash(path))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0o644))
	_, err := r.wt.Add(path)
	require.NoError(r.t, err)
}

func (r *testRepo) remove(path string) {
	r.t.Helper()
	_, err := r.wt.Remove(path)
	require.NoError(r.t, err)
}

func (r *testRepo) move(from, to string) {
	r.t.Helper()
	full := filepath.Join(r.dir, filepath.FromSlash(to))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
	_, err := r.wt.Move(from, to)
	require.NoError(r.t, err)
}

func (r *testRepo) commit(msg string) plumbing.Hash {
	r.t.Helper()
	r.tick++
	hash, err := r.wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Date(2024, 1, 1, 0, r.tick, 0, 0, time.UTC),
		},
	})
	require.NoError(r.t, err)
	return hash
}

func (r *testRepo) checkout(branch string, create bool) {
	r.t.Helper()
	require.NoError(r.t, r.wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
		Force:  true,
	}))
}

func (r *testRepo) setRemoteRef(name string, hash plumbing.Hash) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName(defaultRemote, name), hash)
	require.NoError(r.t, r.repo.Storer.SetReference(ref))
}
