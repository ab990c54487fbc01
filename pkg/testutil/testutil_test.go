// pkg/testutil/testutil_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the test environment, fixtures and scripted prompter

package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/registry"
)

func TestNewEnvironment(t *testing.T) {
	env := NewEnvironment(t)

	assert.Equal(t, env.DataDir, env.Env.Paths.DataDir())
	assert.Equal(t, env.CacheDir, env.Env.Paths.CacheDir())
	assert.Equal(t, env.CurrentDir, env.Env.Paths.CurrentDir())
	assert.Equal(t, filepath.Join(env.DataDir, "typst", "packages", "local", "a", "1.0.0"), env.PackageDir("local", "a", "1.0.0"))
	assert.Equal(t, filepath.Join(env.CacheDir, "typst", "packages", "preview", "a", "1.0.0"), env.PackageDir("preview", "a", "1.0.0"))
	assert.False(t, env.Env.DryRun)
	assert.True(t, env.DryRun().Env.DryRun)
}

func TestWorkspace(t *testing.T) {
	dir := t.TempDir()
	Workspace(t, dir, "example", "1.2.3", map[string]string{"lib/util.typ": "#let x = 1"},
		"[tool.utpm]\nnamespace = \"mine\"")

	m, err := manifest.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "example", m.Package.Name)
	assert.Equal(t, "1.2.3", m.Package.Version)
	assert.Equal(t, "mine", m.Namespace("local"))
	assert.ElementsMatch(t, []string{"typst.toml", "main.typ", "lib/util.typ"}, ListFiles(t, dir))
}

func TestInstallPackage(t *testing.T) {
	env := NewEnvironment(t)
	dir := env.InstallPackage("local", "pkg", "0.1.0")

	AssertFileContains(t, filepath.Join(dir, "typst.toml"), `name = "pkg"`)
	AssertNotExists(t, filepath.Join(dir, "missing"))
}

func TestAssertSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	AssertSymlink(t, link, target)
}

func TestPrompter(t *testing.T) {
	p := &Prompter{
		Confirms: []bool{false},
		Answers:  map[string]string{"Name": "demo"},
	}

	ok, err := p.Confirm("first?", true)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Confirm("second?", true)
	require.NoError(t, err)
	assert.True(t, ok, "unscripted confirm falls back to the default")

	name, _ := p.Input("Name", "x")
	assert.Equal(t, "demo", name)
	version, _ := p.Input("Version", "1.0.0")
	assert.Equal(t, "1.0.0", version)
	choice, _ := p.Select("Pick", []string{"yes", "no"}, "")
	assert.Equal(t, "yes", choice)

	assert.Equal(t, []string{"first?", "second?", "Name", "Version", "Pick"}, p.Asked)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(t, RegistryPackage{
		RawPackage: registry.RawPackage{Name: "demo", Version: "0.1.0"},
		Files:      map[string]string{"README.md": "# demo"},
	})
	env := NewEnvironment(t).WithRegistry(reg)

	latest, err := env.Env.Registry.Latest(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", latest.Version)

	dest := filepath.Join(t.TempDir(), "demo")
	require.NoError(t, env.Env.Registry.Download(context.Background(), "demo", "0.1.0", dest))
	assert.ElementsMatch(t, []string{"typst.toml", "main.typ", "README.md"}, ListFiles(t, dest))
	assert.EqualValues(t, 1, reg.ArchiveHits.Load())
}
