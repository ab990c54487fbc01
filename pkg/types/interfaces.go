package types

import (
	"io/fs"
)

// FS is the filesystem interface required for utpm operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error

	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Prompter asks the user for confirmation or input. Commands take one so they can
// run unattended in tests.
type Prompter interface {
	Confirm(question string, defaultValue bool) (bool, error)
	Input(question, defaultValue string) (string, error)
	Select(question string, options []string, defaultOption string) (string, error)
}
