// pkg/gitops/gitops_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: go-git, temporary repositories
// PURPOSE: Test SSH key resolution, clone, pull, commit, push and repository errors

package gitops_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/gitops"
)

func TestKeyPath(t *testing.T) {
	homedir.DisableCache = true
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(gitops.EnvKeyPath, "")

	t.Run("falls_back_to_rsa", func(t *testing.T) {
		assert.Equal(t, filepath.Join(home, ".ssh", "id_rsa"), gitops.KeyPath(""))
	})

	t.Run("prefers_ed25519_when_present", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Join(home, ".ssh"), 0700))
		require.NoError(t, os.WriteFile(filepath.Join(home, ".ssh", "id_ed25519"), []byte("key"), 0600))
		assert.Equal(t, filepath.Join(home, ".ssh", "id_ed25519"), gitops.KeyPath(""))
	})

	t.Run("configured_wins_over_defaults", func(t *testing.T) {
		assert.Equal(t, "/keys/deploy", gitops.KeyPath("/keys/deploy"))
	})

	t.Run("env_wins_over_everything", func(t *testing.T) {
		t.Setenv(gitops.EnvKeyPath, "/env/key")
		assert.Equal(t, "/env/key", gitops.KeyPath("/keys/deploy"))
	})
}

func TestIsSSH(t *testing.T) {
	assert.True(t, gitops.IsSSH("git@github.com:typst/packages.git"))
	assert.True(t, gitops.IsSSH("ssh://git@github.com/typst/packages.git"))
	assert.False(t, gitops.IsSSH("https://github.com/typst/packages"))
	assert.False(t, gitops.IsSSH("/tmp/repo"))
}

func TestCredentialsMethod(t *testing.T) {
	t.Run("https_with_token", func(t *testing.T) {
		auth, err := gitops.Credentials{Token: "secret"}.Method("https://github.com/a/b")
		require.NoError(t, err)
		basic, ok := auth.(*http.BasicAuth)
		require.True(t, ok)
		assert.Equal(t, "secret", basic.Password)
	})

	t.Run("https_anonymous", func(t *testing.T) {
		auth, err := gitops.Credentials{}.Method("https://github.com/a/b")
		require.NoError(t, err)
		assert.Nil(t, auth)
	})

	t.Run("ssh_missing_key", func(t *testing.T) {
		_, err := gitops.Credentials{KeyPath: filepath.Join(t.TempDir(), "nope")}.Method("git@github.com:a/b.git")
		assert.True(t, errors.IsErrorCode(err, errors.ErrGit))
	})
}

func TestCommitAll(t *testing.T) {
	dir := t.TempDir()
	repo, err := gitops.Init(dir, gitops.Credentials{})
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "packages", "preview", "demo", "1.0.0"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "packages", "preview", "demo", "1.0.0", "typst.toml"), []byte("[package]\n"), 0644))

	clean, err := repo.Clean()
	require.NoError(t, err)
	assert.False(t, clean)

	hash, err := repo.CommitAll("demo:1.0.0 using utpm", gitops.Signature{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Len(t, hash, 40)

	clean, err = repo.Clean()
	require.NoError(t, err)
	assert.True(t, clean)

	require.NoError(t, repo.Checkout("demo-1.0.0", true))
	branch, err := repo.Branch()
	require.NoError(t, err)
	assert.Equal(t, "demo-1.0.0", branch)
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := gitops.Open(t.TempDir(), gitops.Credentials{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrGit))
}

func TestPull_NoRemote(t *testing.T) {
	repo, err := gitops.Init(t.TempDir(), gitops.Credentials{})
	require.NoError(t, err)
	assert.True(t, errors.IsErrorCode(repo.Pull(context.Background()), errors.ErrGit))
}

var tester = gitops.Signature{Name: "Jane", Email: "jane@example.com"}

// upstream creates a repository holding one committed file.
func upstream(t *testing.T) (*gitops.Repo, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "upstream")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "typst.toml"), []byte("[package]\n"), 0644))

	repo, err := gitops.Init(dir, gitops.Credentials{})
	require.NoError(t, err)
	_, err = repo.CommitAll("initial", tester)
	require.NoError(t, err)
	return repo, dir
}

func TestClone(t *testing.T) {
	_, src := upstream(t)
	dest := filepath.Join(t.TempDir(), "clone")

	repo, err := gitops.Clone(context.Background(), src, dest, gitops.Credentials{})
	require.NoError(t, err)
	assert.Equal(t, dest, repo.Dir)
	assert.FileExists(t, filepath.Join(dest, "typst.toml"))

	clean, err := repo.Clean()
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestClone_MissingSource(t *testing.T) {
	_, err := gitops.Clone(context.Background(), filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "clone"), gitops.Credentials{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrGit))
}

func TestCloneOrPull(t *testing.T) {
	up, src := upstream(t)
	dest := filepath.Join(t.TempDir(), "clone")

	_, err := gitops.CloneOrPull(context.Background(), src, dest, gitops.Credentials{})
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dest, "main.typ"))

	// up to date is not an error
	_, err = gitops.CloneOrPull(context.Background(), src, dest, gitops.Credentials{})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(src, "main.typ"), []byte("= Hello"), 0644))
	_, err = up.CommitAll("add entrypoint", tester)
	require.NoError(t, err)

	_, err = gitops.CloneOrPull(context.Background(), src, dest, gitops.Credentials{})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "main.typ"))
}

func TestPush(t *testing.T) {
	_, src := upstream(t)
	bareDir := filepath.Join(t.TempDir(), "bare.git")
	_, err := git.PlainClone(bareDir, true, &git.CloneOptions{URL: src})
	require.NoError(t, err)

	work, err := gitops.Clone(context.Background(), bareDir, filepath.Join(t.TempDir(), "work"), gitops.Credentials{})
	require.NoError(t, err)
	require.NoError(t, work.Checkout("demo-1.0.0", true))
	require.NoError(t, os.WriteFile(filepath.Join(work.Dir, "README.md"), []byte("# demo"), 0644))
	hash, err := work.CommitAll("demo:1.0.0 using utpm", tester)
	require.NoError(t, err)

	require.NoError(t, work.Push(context.Background(), "demo-1.0.0"))
	// pushing again has nothing to send
	require.NoError(t, work.Push(context.Background(), "demo-1.0.0"))

	bare, err := git.PlainOpen(bareDir)
	require.NoError(t, err)
	ref, err := bare.Reference(plumbing.NewBranchReferenceName("demo-1.0.0"), true)
	require.NoError(t, err)
	assert.Equal(t, hash, ref.Hash().String())
}
