// Package store reads and prunes the installed package trees
// (<data>/typst/packages and <cache>/typst/packages).
package store

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/types"
)

// Store reads package trees through a types.FS.
type Store struct {
	fs types.FS
}

// New creates a Store.
func New(fsys types.FS) *Store {
	return &Store{fs: fsys}
}

// Read lists every namespace under root. A missing root yields an empty tree.
func (s *Store) Read(root string) (*types.PackageTree, error) {
	data := &types.PackageTree{Path: root, Namespaces: []types.Namespace{}}

	names, err := s.subdirs(root)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", root)
	}

	for _, name := range names {
		ns, err := s.ReadNamespace(filepath.Join(root, name), name)
		if err != nil {
			return nil, err
		}
		data.Namespaces = append(data.Namespaces, *ns)
	}
	return data, nil
}

// ReadNamespace lists the packages in dir.
func (s *Store) ReadNamespace(dir, name string) (*types.Namespace, error) {
	names, err := s.subdirs(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "namespace %s not found", name).WithDetail("path", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", dir)
	}

	ns := &types.Namespace{Name: name, Packages: []types.Package{}}
	for _, pkgName := range names {
		pkg, err := s.ReadPackage(filepath.Join(dir, pkgName), pkgName)
		if err != nil {
			return nil, err
		}
		ns.Packages = append(ns.Packages, *pkg)
	}
	return ns, nil
}

// ReadPackage lists the versions in dir.
func (s *Store) ReadPackage(dir, name string) (*types.Package, error) {
	versions, err := s.subdirs(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "package %s not found", name).WithDetail("path", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", dir)
	}
	SortVersions(versions)
	return &types.Package{Name: name, Versions: versions}, nil
}

// Latest returns the highest installed version of the package in dir.
func (s *Store) Latest(dir string) (string, error) {
	pkg, err := s.ReadPackage(dir, filepath.Base(dir))
	if err != nil {
		return "", err
	}
	if len(pkg.Versions) == 0 {
		return "", errors.New(errors.ErrPackageNotExist, "").WithDetail("path", dir)
	}
	return pkg.Versions[len(pkg.Versions)-1], nil
}

// Exists reports whether path is present (symlinks included).
func (s *Store) Exists(path string) bool {
	_, err := s.fs.Lstat(path)
	return err == nil
}

// Remove deletes path, failing with NOT_FOUND when absent.
func (s *Store) Remove(path string) error {
	if !s.Exists(path) {
		return errors.Newf(errors.ErrNotFound, "%s not found", path).WithDetail("path", path)
	}
	if err := s.fs.RemoveAll(path); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to remove %s", path)
	}
	return nil
}

func (s *Store) subdirs(dir string) ([]string, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || e.Type()&os.ModeSymlink != 0 {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// SortVersions orders versions by semver, lowest first. Names that are not valid
// versions sort before all versions, lexically.
func SortVersions(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		vi, erri := semver.NewVersion(versions[i])
		vj, errj := semver.NewVersion(versions[j])
		switch {
		case erri != nil && errj != nil:
			return versions[i] < versions[j]
		case erri != nil:
			return true
		case errj != nil:
			return false
		}
		return vi.LessThan(vj)
	})
}
