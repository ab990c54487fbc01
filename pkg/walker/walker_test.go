// pkg/walker/walker_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test ignore file handling during workspace walks

package walker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/pkg/walker"
)

func tree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func options() walker.Options {
	opts := walker.DefaultOptions()
	// keep the developer's global gitignore out of the tests
	opts.GitGlobal = false
	return opts
}

func TestWalk_Plain(t *testing.T) {
	root := tree(t, map[string]string{
		"typst.toml":   "",
		"lib.typ":      "",
		"src/util.typ": "",
		".hidden":      "",
		".git/HEAD":    "",
	})

	entries, err := walker.Walk(root, options())
	require.NoError(t, err)

	assert.Equal(t, []string{"lib.typ", "src", "src/util.typ", "typst.toml"}, slash(walker.Paths(entries)))
	assert.True(t, entries[1].IsDir)
}

func TestWalk_Hidden(t *testing.T) {
	root := tree(t, map[string]string{
		"lib.typ":   "",
		".hidden":   "",
		".git/HEAD": "",
	})
	opts := options()
	opts.Hidden = true

	entries, err := walker.Walk(root, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden", "lib.typ"}, slash(walker.Paths(entries)))
}

func TestWalk_IgnoreFiles(t *testing.T) {
	root := tree(t, map[string]string{
		".gitignore":         "*.pdf\nbuild/\n",
		".typstignore":       "notes.md\n",
		".ignore":            "draft.typ\n",
		"lib.typ":            "",
		"out.pdf":            "",
		"notes.md":           "",
		"draft.typ":          "",
		"build/x.typ":        "",
		"docs/.gitignore":    "local.typ\n",
		"docs/local.typ":     "",
		"docs/guide.typ":     "",
		"other/local.typ":    "",
		".git/info/exclude":  "secret.typ\n",
		"secret.typ":         "",
	})

	entries, err := walker.Walk(root, options())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"docs", "docs/guide.typ", "draft.typ", "lib.typ", "other", "other/local.typ",
	}, slash(walker.Paths(entries)))

	opts := options()
	opts.Ignore = true
	opts.GitIgnore = false
	opts.TypstIgnore = false
	opts.GitExclude = false

	entries, err = walker.Walk(root, opts)
	require.NoError(t, err)
	paths := slash(walker.Paths(entries))
	assert.NotContains(t, paths, "draft.typ")
	assert.Contains(t, paths, "out.pdf")
	assert.Contains(t, paths, "secret.typ")
	assert.Contains(t, paths, "notes.md")
}

func TestWalk_CustomIgnoreAndExcludes(t *testing.T) {
	root := tree(t, map[string]string{
		".utpmignore":    "tmp/\n",
		"lib.typ":        "",
		"README.md":      "",
		"tmp/scratch":    "",
		"tests/test.typ": "",
	})

	opts := options()
	opts.CustomIgnore = filepath.Join(root, ".utpmignore")
	opts.Excludes = []string{"*.md", "tests/", " "}

	entries, err := walker.Walk(root, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib.typ"}, slash(walker.Paths(entries)))
}

func TestWalk_ExcludeOverridesNegation(t *testing.T) {
	root := tree(t, map[string]string{
		".gitignore": "*.typ\n!keep.typ\n",
		"keep.typ":   "",
		"drop.typ":   "",
	})

	entries, err := walker.Walk(root, options())
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.typ"}, slash(walker.Paths(entries)))

	opts := options()
	opts.Excludes = []string{"keep.typ"}
	entries, err = walker.Walk(root, opts)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func slash(in []string) []string {
	out := make([]string, len(in))
	for i, p := range in {
		out[i] = filepath.ToSlash(p)
	}
	return out
}
