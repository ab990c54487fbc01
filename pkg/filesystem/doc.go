// Package filesystem provides filesystem implementations for utpm.
//
// It contains the OS-backed and afero-backed implementations of types.FS together
// with the copy and symlink helpers link, clone and publish use to place packages.
package filesystem
