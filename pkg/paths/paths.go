package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"

	"github.com/typst-community/utpm/pkg/errors"
)

// Environment variable names
const (
	EnvDataDir    = "UTPM_DATA_DIR"
	EnvCacheDir   = "UTPM_CACHE_DIR"
	EnvCurrentDir = "UTPM_CURRENT_DIR"
)

// Layout constants. These mirror where the Typst compiler looks for packages and
// are not user-configurable.
const (
	ManifestFile     = "typst.toml"
	TypstDirName     = "typst"
	PackagesDirName  = "packages"
	UtpmDirName      = "utpm"
	TmpDirName       = "tmp"
	GitPackagesName  = "git-packages"
	PreviewNamespace = "preview"
)

// Paths resolves every directory utpm reads or writes.
type Paths struct {
	dataDir    string
	cacheDir   string
	currentDir string
}

// New resolves the data, cache and current directories from the environment.
func New() (*Paths, error) {
	p := &Paths{}

	var err error
	if p.dataDir, err = resolveDir(EnvDataDir, xdg.DataHome); err != nil {
		return nil, err
	}
	if p.cacheDir, err = resolveDir(EnvCacheDir, xdg.CacheHome); err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIO, "failed to get current directory")
	}
	if p.currentDir, err = resolveDir(EnvCurrentDir, cwd); err != nil {
		return nil, err
	}

	return p, nil
}

func resolveDir(env, fallback string) (string, error) {
	dir := os.Getenv(env)
	if dir == "" {
		return fallback, nil
	}
	abs, err := filepath.Abs(ExpandHome(dir))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to resolve %s", env)
	}
	return abs, nil
}

// DataDir returns the data home (UTPM_DATA_DIR or XDG data home).
func (p *Paths) DataDir() string { return p.dataDir }

// CacheDir returns the cache home (UTPM_CACHE_DIR or XDG cache home).
func (p *Paths) CacheDir() string { return p.cacheDir }

// CurrentDir returns the directory commands operate on.
func (p *Paths) CurrentDir() string { return p.currentDir }

// PackagesDir returns <data>/typst/packages.
func (p *Paths) PackagesDir() string {
	return filepath.Join(p.dataDir, TypstDirName, PackagesDirName)
}

// CachePackagesDir returns <cache>/typst/packages.
func (p *Paths) CachePackagesDir() string {
	return filepath.Join(p.cacheDir, TypstDirName, PackagesDirName)
}

// UtpmDataDir returns <data>/utpm.
func (p *Paths) UtpmDataDir() string {
	return filepath.Join(p.dataDir, UtpmDirName)
}

// TmpDir returns the scratch directory used by install.
func (p *Paths) TmpDir() string {
	return filepath.Join(p.UtpmDataDir(), TmpDirName)
}

// LocalPackagesRepo returns where the typst/packages fork is cloned for publishing.
func (p *Paths) LocalPackagesRepo() string {
	return filepath.Join(p.UtpmDataDir(), GitPackagesName)
}

// NamespaceRoot returns the directory holding every package of a namespace.
// The preview namespace lives in the cache tree.
func (p *Paths) NamespaceRoot(namespace string) string {
	if namespace == PreviewNamespace {
		return filepath.Join(p.CachePackagesDir(), namespace)
	}
	return filepath.Join(p.PackagesDir(), namespace)
}

// PackageDir returns the install directory of a single package version.
func (p *Paths) PackageDir(namespace, name, version string) string {
	return filepath.Join(p.NamespaceRoot(namespace), name, version)
}

// ManifestPath returns the typst.toml path inside dir.
func ManifestPath(dir string) string {
	return filepath.Join(dir, ManifestFile)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Exists reports whether anything (including a dangling symlink) is at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// HasContent reports whether dir exists and holds at least one entry.
func HasContent(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}
