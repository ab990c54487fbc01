// pkg/testutil/assertions.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Filesystem assertions shared by command tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertFileContains checks that path is a regular file holding substr.
func AssertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "expected file %s", path)
	assert.Contains(t, string(data), substr)
}

// AssertNotExists checks that nothing, not even a dangling symlink, is at path.
func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "expected %s to be absent", path)
}

// AssertSymlink checks that path is a symlink pointing at target.
func AssertSymlink(t *testing.T, path, target string) {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err)
	require.True(t, info.Mode()&os.ModeSymlink != 0, "expected %s to be a symlink", path)

	got, err := os.Readlink(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(target), filepath.Clean(got))
}

// ListFiles returns every regular file below root as slash-separated relative paths.
func ListFiles(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			rel, _ := filepath.Rel(root, path)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	return out
}
