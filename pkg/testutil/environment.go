// pkg/testutil/environment.go
// DEPENDENCIES: pkg/paths, pkg/config, pkg/filesystem, pkg/registry
// PURPOSE: Isolated data/cache/current directories wired into a types.Env

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/pkg/config"
	"github.com/typst-community/utpm/pkg/filesystem"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/registry"
	"github.com/typst-community/utpm/pkg/types"
)

// Environment is a throwaway utpm installation rooted in a temp directory.
type Environment struct {
	Root       string
	DataDir    string
	CacheDir   string
	CurrentDir string
	HomeDir    string

	Config   *config.Config
	Prompter *Prompter
	Env      *types.Env

	t *testing.T
}

// NewEnvironment creates the directories, points every UTPM_* variable at them and
// builds a types.Env over the real filesystem. The registry client talks to the
// production URLs until WithRegistry is called.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	root := t.TempDir()
	e := &Environment{
		Root:       root,
		DataDir:    filepath.Join(root, "data"),
		CacheDir:   filepath.Join(root, "cache"),
		CurrentDir: filepath.Join(root, "work"),
		HomeDir:    filepath.Join(root, "home"),
		Config:     config.Default(),
		Prompter:   &Prompter{},
		t:          t,
	}
	for _, dir := range []string{e.DataDir, e.CacheDir, e.CurrentDir, e.HomeDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	t.Setenv(paths.EnvDataDir, e.DataDir)
	t.Setenv(paths.EnvCacheDir, e.CacheDir)
	t.Setenv(paths.EnvCurrentDir, e.CurrentDir)
	t.Setenv("HOME", e.HomeDir)
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv(config.EnvConfigFile, filepath.Join(root, "config", "missing.toml"))
	t.Setenv("UTPM_KEYPATH", "")
	t.Setenv("UTPM_GITHUB_TOKEN", "")

	p, err := paths.New()
	require.NoError(t, err)

	e.Env = &types.Env{
		Paths:    p,
		Config:   e.Config,
		FS:       filesystem.NewOS(),
		Prompter: e.Prompter,
		Registry: registry.New(e.Config.Registry, registry.WithProgress(nil)),
	}
	return e
}

// DryRun switches the environment to dry-run mode.
func (e *Environment) DryRun() *Environment {
	e.Env.DryRun = true
	return e
}

// WithRegistry points the environment's registry client at r.
func (e *Environment) WithRegistry(r *Registry) *Environment {
	e.t.Helper()
	e.Config.Registry.IndexURL = r.URL + "/preview/index.json"
	e.Config.Registry.ArchiveURL = r.URL + "/preview"

	e.Env.Registry = registry.NewDefault(e.Config.Registry, e.CacheDir, registry.WithProgress(nil))
	return e
}

// PackageDir returns where a package version is installed.
func (e *Environment) PackageDir(namespace, name, version string) string {
	return e.Env.Paths.PackageDir(namespace, name, version)
}
