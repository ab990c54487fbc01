// pkg/commands/dependencies/dependencies_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Isolated data/current dirs (testutil.Environment)
// PURPOSE: Test adding and deleting [tool.utpm].dependencies entries

package dependencies_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/pkg/commands/dependencies"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/testutil"
	"github.com/typst-community/utpm/pkg/types"
)

func deps(t *testing.T, dir string) []string {
	t.Helper()
	m, err := manifest.Load(dir)
	require.NoError(t, err)
	extra, err := m.Extra()
	require.NoError(t, err)
	return extra.Dependencies
}

func TestAdd(t *testing.T) {
	env := testutil.NewEnvironment(t)
	src := testutil.Workspace(t, filepath.Join(env.Root, "dep"), "dep", "0.1.0", nil)
	testutil.Workspace(t, env.CurrentDir, "app", "1.0.0", nil, "[tool.other]\nkeep = true")

	result, err := dependencies.Add(context.Background(), dependencies.AddOptions{Env: env.Env, URIs: []string{src, src}})
	require.NoError(t, err)
	assert.Equal(t, types.DependencyAdded, result.Action)
	assert.Equal(t, []string{src}, result.Changed)
	assert.Equal(t, []string{src}, deps(t, env.CurrentDir))

	require.NotNil(t, result.Install)
	require.Len(t, result.Install.Packages, 1)
	assert.DirExists(t, env.PackageDir("local", "dep", "0.1.0"))

	testutil.AssertFileContains(t, filepath.Join(env.CurrentDir, "typst.toml"), "[tool.other]")
}

func TestAdd_KeepsExisting(t *testing.T) {
	env := testutil.NewEnvironment(t)
	a := testutil.Workspace(t, filepath.Join(env.Root, "a"), "alpha", "0.1.0", nil)
	b := testutil.Workspace(t, filepath.Join(env.Root, "b"), "beta", "0.1.0", nil)
	testutil.Workspace(t, env.CurrentDir, "app", "1.0.0", nil,
		"[tool.utpm]\nnamespace = \"local\"\ndependencies = [\""+filepath.ToSlash(a)+"\"]")

	result, err := dependencies.Add(context.Background(), dependencies.AddOptions{Env: env.Env, URIs: []string{a, b}})
	require.NoError(t, err)
	assert.Equal(t, []string{b}, result.Changed)
	assert.Equal(t, []string{a, b}, deps(t, env.CurrentDir))
}

func TestAdd_NoURI(t *testing.T) {
	env := testutil.NewEnvironment(t)
	testutil.Workspace(t, env.CurrentDir, "app", "1.0.0", nil)

	_, err := dependencies.Add(context.Background(), dependencies.AddOptions{Env: env.Env})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoURIFound))
}

func TestAdd_NoManifest(t *testing.T) {
	env := testutil.NewEnvironment(t)

	_, err := dependencies.Add(context.Background(), dependencies.AddOptions{Env: env.Env, URIs: []string{"x"}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifest))
}

func TestAdd_DryRun(t *testing.T) {
	env := testutil.NewEnvironment(t).DryRun()
	testutil.Workspace(t, env.CurrentDir, "app", "1.0.0", nil)

	result, err := dependencies.Add(context.Background(), dependencies.AddOptions{Env: env.Env, URIs: []string{"https://example.com/x.git"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/x.git"}, result.Changed)
	assert.Empty(t, deps(t, env.CurrentDir))
}

func TestDelete(t *testing.T) {
	env := testutil.NewEnvironment(t)
	testutil.Workspace(t, env.CurrentDir, "app", "1.0.0", nil,
		"[tool.utpm]\ndependencies = [\"one\", \"two\", \"three\"]")

	result, err := dependencies.Delete(dependencies.DeleteOptions{Env: env.Env, URIs: []string{"two", "four"}})
	require.NoError(t, err)
	assert.Equal(t, types.DependencyRemoved, result.Action)
	assert.Equal(t, []string{"two"}, result.Changed)
	assert.Equal(t, []string{"four"}, result.Missing)
	assert.Equal(t, []string{"one", "three"}, deps(t, env.CurrentDir))
}

func TestDelete_NothingChanged(t *testing.T) {
	env := testutil.NewEnvironment(t)
	testutil.Workspace(t, env.CurrentDir, "app", "1.0.0", nil)

	result, err := dependencies.Delete(dependencies.DeleteOptions{Env: env.Env, URIs: []string{"x"}})
	require.NoError(t, err)
	assert.Empty(t, result.Changed)
	assert.Equal(t, []string{"x"}, result.Missing)
}
