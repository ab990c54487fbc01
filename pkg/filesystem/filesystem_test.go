// pkg/filesystem/filesystem_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Test the afero adapter and the copy/symlink helpers

package filesystem_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/pkg/filesystem"
)

func seed(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
}

func list(t *testing.T, fs afero.Fs, root string) []string {
	t.Helper()
	var out []string
	require.NoError(t, afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, path)
			out = append(out, rel)
		}
		return nil
	}))
	sort.Strings(out)
	return out
}

func TestCopyTree_SkipsToolDirs(t *testing.T) {
	mem := afero.NewMemMapFs()
	seed(t, mem, map[string]string{
		"/src/typst.toml":         "[package]",
		"/src/lib.typ":            "#let x = 1",
		"/src/docs/guide.typ":     "= Guide",
		"/src/.utpm/state":        "internal",
		"/src/install/script.typ": "skip",
	})

	fsys := filesystem.NewAferoFS(mem)
	require.NoError(t, filesystem.CopyTree(fsys, "/src", "/dst"))

	assert.Equal(t, []string{"docs/guide.typ", "lib.typ", "typst.toml"}, list(t, mem, "/dst"))

	data, err := afero.ReadFile(mem, "/dst/docs/guide.typ")
	require.NoError(t, err)
	assert.Equal(t, "= Guide", string(data))
}

func TestCopyFiles(t *testing.T) {
	mem := afero.NewMemMapFs()
	seed(t, mem, map[string]string{
		"/src/typst.toml":     "[package]",
		"/src/lib.typ":        "lib",
		"/src/notes/todo.md":  "ignored",
		"/src/assets/img.svg": "<svg/>",
	})
	fsys := filesystem.NewAferoFS(mem)

	require.NoError(t, filesystem.CopyFiles(fsys, "/src", "/dst", []string{"typst.toml", "lib.typ", "assets", "assets/img.svg"}))

	assert.Equal(t, []string{"assets/img.svg", "lib.typ", "typst.toml"}, list(t, mem, "/dst"))
}

func TestCopyFiles_MissingSource(t *testing.T) {
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	err := filesystem.CopyFiles(fsys, "/src", "/dst", []string{"nope.typ"})
	assert.Error(t, err)
}

func TestSymlinkDir_OS(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "ns", "pkg", "1.0.0")
	require.NoError(t, os.WriteFile(filepath.Join(src, "lib.typ"), []byte("x"), 0644))

	fsys := filesystem.NewOS()
	require.NoError(t, filesystem.SymlinkDir(fsys, src, dst))

	target, err := os.Readlink(dst)
	require.NoError(t, err)
	assert.Equal(t, src, target)
	assert.FileExists(t, filepath.Join(dst, "lib.typ"))
}

func TestNewOS(t *testing.T) {
	fs := filesystem.NewOS()
	tmp := t.TempDir()
	file := filepath.Join(tmp, "a.txt")

	require.NoError(t, fs.WriteFile(file, []byte("hello"), 0644))
	data, err := fs.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, fs.Rename(file, filepath.Join(tmp, "b.txt")))
	entries, err := fs.ReadDir(tmp)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.txt", entries[0].Name())
}

func TestAferoFS_NoSymlinkSupport(t *testing.T) {
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())

	err := fsys.Symlink("/a", "/b")
	assert.ErrorIs(t, err, afero.ErrNoSymlink)

	_, err = fsys.Readlink("/b")
	assert.ErrorIs(t, err, afero.ErrNoReadlink)
}
