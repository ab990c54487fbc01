package filesystem

import (
	"io/fs"
	"path/filepath"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/types"
)

// SkippedDirs are never copied by CopyTree.
var SkippedDirs = map[string]bool{
	".utpm":   true,
	"install": true,
}

// CopyTree copies src into dst recursively, skipping SkippedDirs.
func CopyTree(fsys types.FS, src, dst string) error {
	if err := fsys.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create %s", dst)
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to read %s", src)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if SkippedDirs[entry.Name()] {
				continue
			}
			if err := CopyTree(fsys, from, to); err != nil {
				return err
			}
			continue
		}
		if err := CopyFile(fsys, from, to); err != nil {
			return err
		}
	}
	return nil
}

// CopyFiles copies the given paths (relative to src) into dst. Directory entries are
// created, files are copied with their permissions.
func CopyFiles(fsys types.FS, src, dst string, rels []string) error {
	if err := fsys.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create %s", dst)
	}

	for _, rel := range rels {
		from := filepath.Join(src, rel)
		to := filepath.Join(dst, rel)

		info, err := fsys.Stat(from)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to stat %s", from)
		}
		if info.IsDir() {
			if err := fsys.MkdirAll(to, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to create %s", to)
			}
			continue
		}
		if err := CopyFile(fsys, from, to); err != nil {
			return err
		}
	}
	return nil
}

// CopyFile copies a single file, creating parent directories.
func CopyFile(fsys types.FS, from, to string) error {
	info, err := fsys.Stat(from)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to stat %s", from)
	}
	data, err := fsys.ReadFile(from)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to read %s", from)
	}
	if err := fsys.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create %s", filepath.Dir(to))
	}
	if err := fsys.WriteFile(to, data, perm(info)); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to write %s", to)
	}
	return nil
}

// SymlinkDir points dst at src, creating dst's parent.
func SymlinkDir(fsys types.FS, src, dst string) error {
	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create %s", filepath.Dir(dst))
	}
	if err := fsys.Symlink(src, dst); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to link %s to %s", dst, src)
	}
	return nil
}

func perm(info fs.FileInfo) fs.FileMode {
	if p := info.Mode().Perm(); p != 0 {
		return p
	}
	return 0644
}
