package scm_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katjaweigel/ESMValTool/internal/infrastructure/repositories/scm"
)

// testRepo wraps a throwaway Git repository for version-resolution tests.
type testRepo struct {
	t        *testing.T
	dir      string
	repo     *git.Repository
	worktree *git.Worktree
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	return &testRepo{t: t, dir: dir, repo: repo, worktree: worktree}
}

func (r *testRepo) commit(filename string) plumbing.Hash {
	r.t.Helper()

	path := filepath.Join(r.dir, filename)
	require.NoError(r.t, os.WriteFile(path, []byte(filename+"\n"), 0o600))

	_, err := r.worktree.Add(filename)
	require.NoError(r.t, err)

	hash, err := r.worktree.Commit("add "+filename, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(r.t, err)
	return hash
}

func (r *testRepo) tag(name string, hash plumbing.Hash) {
	r.t.Helper()

	_, err := r.repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

func (r *testRepo) annotatedTag(name string, hash plumbing.Hash) {
	r.t.Helper()

	_, err := r.repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Now(),
		},
		Message: "release " + name,
	})
	require.NoError(r.t, err)
}

func TestVersionRepositoryResolveVersion(t *testing.T) {
	t.Parallel()

	t.Run("should return the tag itself on an exact clean tag", func(t *testing.T) {
		t.Parallel()

		// given
		r := newTestRepo(t)
		hash := r.commit("setup.py")
		r.tag("v2.0.0", hash)
		repo := scm.NewVersionRepository()

		// when
		version, err := repo.ResolveVersion(r.dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", version.Tag)
		assert.Equal(t, 0, version.Distance)
		assert.False(t, version.Dirty)
		assert.Equal(t, "2.0.0", version.String())
	})

	t.Run("should count the commits past the nearest tag", func(t *testing.T) {
		t.Parallel()

		// given
		r := newTestRepo(t)
		tagged := r.commit("setup.py")
		r.tag("v2.0.0", tagged)
		r.commit("first.py")
		r.commit("second.py")
		repo := scm.NewVersionRepository()

		// when
		version, err := repo.ResolveVersion(r.dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", version.Tag)
		assert.Equal(t, 2, version.Distance)
		assert.Contains(t, version.String(), "2.0.0.dev2+g")
	})

	t.Run("should dereference annotated tags", func(t *testing.T) {
		t.Parallel()

		// given
		r := newTestRepo(t)
		hash := r.commit("setup.py")
		r.annotatedTag("v2.1.0", hash)
		repo := scm.NewVersionRepository()

		// when
		version, err := repo.ResolveVersion(r.dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "2.1.0", version.Tag)
		assert.Equal(t, 0, version.Distance)
	})

	t.Run("should pick the highest semver tag on a shared commit", func(t *testing.T) {
		t.Parallel()

		// given
		r := newTestRepo(t)
		hash := r.commit("setup.py")
		r.tag("v1.9.0", hash)
		r.tag("v2.0.0", hash)
		r.tag("v1.10.0", hash)
		repo := scm.NewVersionRepository()

		// when
		version, err := repo.ResolveVersion(r.dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", version.Tag)
	})

	t.Run("should flag a dirty worktree", func(t *testing.T) {
		t.Parallel()

		// given
		r := newTestRepo(t)
		hash := r.commit("setup.py")
		r.tag("v2.0.0", hash)
		require.NoError(t, os.WriteFile(
			filepath.Join(r.dir, "scratch.py"), []byte("wip\n"), 0o600))
		repo := scm.NewVersionRepository()

		// when
		version, err := repo.ResolveVersion(r.dir)

		// then
		require.NoError(t, err)
		assert.True(t, version.Dirty)
		assert.Equal(t, "2.0.0+dirty", version.String())
	})

	t.Run("should fall back to 0.0.0 for an untagged history", func(t *testing.T) {
		t.Parallel()

		// given
		r := newTestRepo(t)
		r.commit("setup.py")
		r.commit("main.py")
		repo := scm.NewVersionRepository()

		// when
		version, err := repo.ResolveVersion(r.dir)

		// then
		require.NoError(t, err)
		assert.Empty(t, version.Tag)
		assert.Equal(t, 2, version.Distance)
		assert.Contains(t, version.String(), "0.0.0.dev2+g")
	})

	t.Run("should fail outside a repository", func(t *testing.T) {
		t.Parallel()

		// given
		repo := scm.NewVersionRepository()

		// when
		_, err := repo.ResolveVersion(t.TempDir())

		// then
		require.Error(t, err)
	})
}
