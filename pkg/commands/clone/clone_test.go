// pkg/commands/clone/clone_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: testutil fake registry, real filesystem
// PURPOSE: Test cloning installed and downloaded packages into a directory

package clone_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/pkg/commands/clone"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/registry"
	"github.com/typst-community/utpm/pkg/testutil"
)

func newEnv(t *testing.T) (*testutil.Environment, *testutil.Registry) {
	t.Helper()
	reg := testutil.NewRegistry(t,
		testutil.RegistryPackage{
			RawPackage: registry.RawPackage{Name: "charged-ieee", Version: "0.1.0"},
			Files:      map[string]string{"template/main.typ": "old"},
		},
		testutil.RegistryPackage{
			RawPackage: registry.RawPackage{Name: "charged-ieee", Version: "0.1.2"},
			Files:      map[string]string{"template/main.typ": "new"},
		},
	)
	return testutil.NewEnvironment(t).WithRegistry(reg), reg
}

func TestClone_DownloadsLatest(t *testing.T) {
	env, reg := newEnv(t)
	target := filepath.Join(env.Root, "paper")

	result, err := clone.Clone(context.Background(), clone.CloneOptions{
		Env:     env.Env,
		Package: "charged-ieee",
		Path:    target,
	})
	require.NoError(t, err)

	assert.Equal(t, "@preview/charged-ieee:0.1.2", result.Spec)
	assert.True(t, result.Downloaded)
	assert.Equal(t, env.PackageDir("preview", "charged-ieee", "0.1.2"), result.Source)
	assert.Equal(t, target, result.Destination)
	assert.Equal(t, "new", testutil.ReadFile(t, target, "template/main.typ"))
	assert.Equal(t, "new", testutil.ReadFile(t, result.Source, "template/main.typ"))
	assert.EqualValues(t, 1, reg.ArchiveHits.Load())
}

func TestClone_ExplicitVersion(t *testing.T) {
	env, _ := newEnv(t)
	target := filepath.Join(env.Root, "paper")

	result, err := clone.Clone(context.Background(), clone.CloneOptions{
		Env:     env.Env,
		Package: "@preview/charged-ieee:0.1.0",
		Path:    target,
	})
	require.NoError(t, err)
	assert.Equal(t, "@preview/charged-ieee:0.1.0", result.Spec)
	assert.Equal(t, "old", testutil.ReadFile(t, target, "template/main.typ"))
}

func TestClone_UsesCache(t *testing.T) {
	env, reg := newEnv(t)
	ctx := context.Background()

	_, err := clone.Clone(ctx, clone.CloneOptions{Env: env.Env, Package: "charged-ieee:0.1.0", DownloadOnly: true})
	require.NoError(t, err)

	result, err := clone.Clone(ctx, clone.CloneOptions{
		Env:     env.Env,
		Package: "charged-ieee:0.1.0",
		Path:    filepath.Join(env.Root, "paper"),
	})
	require.NoError(t, err)
	assert.False(t, result.Downloaded)
	assert.EqualValues(t, 1, reg.ArchiveHits.Load())
}

func TestClone_Redownload(t *testing.T) {
	env, reg := newEnv(t)
	ctx := context.Background()

	_, err := clone.Clone(ctx, clone.CloneOptions{Env: env.Env, Package: "charged-ieee:0.1.0", DownloadOnly: true})
	require.NoError(t, err)
	stale := testutil.WriteFile(t, env.PackageDir("preview", "charged-ieee", "0.1.0"), "stale.txt", "x")

	result, err := clone.Clone(ctx, clone.CloneOptions{
		Env:          env.Env,
		Package:      "charged-ieee:0.1.0",
		DownloadOnly: true,
		Redownload:   true,
	})
	require.NoError(t, err)
	assert.True(t, result.Downloaded)
	assert.Empty(t, result.Destination)
	assert.EqualValues(t, 2, reg.ArchiveHits.Load())
	testutil.AssertNotExists(t, stale)
}

func TestClone_LocalPackage(t *testing.T) {
	env, reg := newEnv(t)
	env.InstallPackage("local", "mine", "1.0.0")
	target := filepath.Join(env.Root, "copy")

	result, err := clone.Clone(context.Background(), clone.CloneOptions{
		Env:     env.Env,
		Package: "@local/mine:1.0.0",
		Path:    target,
	})
	require.NoError(t, err)
	assert.False(t, result.Downloaded)
	assert.ElementsMatch(t, []string{"typst.toml", "main.typ"}, testutil.ListFiles(t, target))
	assert.Zero(t, reg.ArchiveHits.Load())
}

func TestClone_LocalPackageMissing(t *testing.T) {
	env, _ := newEnv(t)

	_, err := clone.Clone(context.Background(), clone.CloneOptions{
		Env:     env.Env,
		Package: "@local/mine:1.0.0",
		Path:    filepath.Join(env.Root, "copy"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotExist))
}

func TestClone_UnknownPackage(t *testing.T) {
	env, _ := newEnv(t)

	_, err := clone.Clone(context.Background(), clone.CloneOptions{Env: env.Env, Package: "nope"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotExist))
}

func TestClone_InvalidReference(t *testing.T) {
	env, _ := newEnv(t)

	_, err := clone.Clone(context.Background(), clone.CloneOptions{Env: env.Env, Package: "not a package!"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotValid))
}

func TestClone_ContentFound(t *testing.T) {
	env, _ := newEnv(t)
	target := filepath.Join(env.Root, "paper")
	testutil.WriteFile(t, target, "notes.txt", "keep me")

	_, err := clone.Clone(context.Background(), clone.CloneOptions{
		Env:     env.Env,
		Package: "charged-ieee:0.1.0",
		Path:    target,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrContentFound))

	_, err = clone.Clone(context.Background(), clone.CloneOptions{
		Env:     env.Env,
		Package: "charged-ieee:0.1.0",
		Path:    target,
		Force:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "keep me", testutil.ReadFile(t, target, "notes.txt"))
	assert.Equal(t, "old", testutil.ReadFile(t, target, "template/main.typ"))
}

func TestClone_Symlink(t *testing.T) {
	env, _ := newEnv(t)
	target := filepath.Join(env.Root, "linked")

	result, err := clone.Clone(context.Background(), clone.CloneOptions{
		Env:     env.Env,
		Package: "charged-ieee:0.1.0",
		Path:    target,
		Symlink: true,
	})
	require.NoError(t, err)
	testutil.AssertSymlink(t, target, result.Source)
}

func TestClone_DryRun(t *testing.T) {
	env, reg := newEnv(t)
	env.DryRun()
	target := filepath.Join(env.Root, "paper")

	result, err := clone.Clone(context.Background(), clone.CloneOptions{
		Env:     env.Env,
		Package: "charged-ieee",
		Path:    target,
	})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, "@preview/charged-ieee:0.1.2", result.Spec)
	assert.Zero(t, reg.ArchiveHits.Load())
	testutil.AssertNotExists(t, target)
	testutil.AssertNotExists(t, result.Source)
}
