// pkg/ui/text/renderer_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test human readable rendering of command results

package text_test

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/pkg/registry"
	"github.com/typst-community/utpm/pkg/types"
	"github.com/typst-community/utpm/pkg/ui/styles"
	"github.com/typst-community/utpm/pkg/ui/text"
)

func render(t *testing.T, v interface{}) string {
	t.Helper()
	styles.SetEnabled(false)
	t.Cleanup(func() { styles.SetEnabled(true) })

	var buf bytes.Buffer
	require.NoError(t, text.New(&buf).RenderResult(v))
	return buf.String()
}

func TestLink(t *testing.T) {
	out := render(t, &types.LinkResult{
		Spec:        "@local/example:1.0.0",
		Destination: "/data/typst/packages/local/example/1.0.0",
		Import:      `#import "@local/example:1.0.0": *`,
	})
	assert.Contains(t, out, "Project copied to: /data/typst/packages/local/example/1.0.0")
	assert.Contains(t, out, `#import "@local/example:1.0.0": *`)
	assert.NotContains(t, out, "dry-run")
}

func TestLink_DryRunSymlink(t *testing.T) {
	out := render(t, &types.LinkResult{Symlink: true, DryRun: true})
	assert.Contains(t, out, "[dry-run]")
	assert.Contains(t, out, "Project symlinked to")
}

func TestList(t *testing.T) {
	out := render(t, &types.ListResult{Trees: []*types.PackageTree{
		{Path: "/data", Namespaces: []types.Namespace{
			{Name: "local", Packages: []types.Package{{Name: "example", Versions: []string{"1.0.0", "1.1.0"}}}},
		}},
		{Path: "/cache", Namespaces: []types.Namespace{}},
	}})
	assert.Contains(t, out, "@local/example:1.0.0")
	assert.Contains(t, out, "@local/example:1.1.0")
	assert.Contains(t, out, "no packages")
}

func TestMetadata(t *testing.T) {
	t.Run("single_field_is_plain", func(t *testing.T) {
		out := render(t, &types.MetadataResult{Fields: []types.MetadataField{{Name: "version", Value: "1.2.3", Set: true}}})
		assert.Equal(t, "1.2.3\n", out)
	})
	t.Run("unset_field", func(t *testing.T) {
		out := render(t, &types.MetadataResult{Fields: []types.MetadataField{{Name: "homepage"}}})
		assert.Equal(t, "Field 'homepage' is not set\n", out)
	})
}

func TestBulkDelete(t *testing.T) {
	out := render(t, &types.BulkDeleteResult{
		Total:     2,
		Succeeded: 1,
		Failures:  []types.BulkDeleteFailure{{Name: "ghost", Error: "not found"}},
	})
	assert.Contains(t, out, "X ghost: not found")
	assert.Contains(t, out, "1/2 successful")
}

func TestSync(t *testing.T) {
	out := render(t, &types.SyncResult{Check: true, Files: []types.SyncedFile{
		{Path: "main.typ", Updates: []types.ImportUpdate{{Package: "@preview/cetz", From: "0.2.0", To: "0.3.1"}}},
	}})
	assert.Contains(t, out, "@preview/cetz:0.2.0 can be updated to 0.3.1")

	out = render(t, &types.SyncResult{})
	assert.Contains(t, out, "All imports are up to date")
}

func TestGet(t *testing.T) {
	out := render(t, &types.GetResult{
		Packages: []registry.RawPackage{{Name: "cetz", Version: "0.3.1", Description: "Drawing", Authors: []string{"A", "B"}}},
		Missing:  []string{"nope"},
	})
	assert.Contains(t, out, "Package not found: nope")
	assert.Contains(t, out, "cetz:0.3.1 - Drawing")
	assert.Contains(t, out, "authors: A, B")
}

func TestRenderError(t *testing.T) {
	styles.SetEnabled(false)
	t.Cleanup(func() { styles.SetEnabled(true) })

	var buf bytes.Buffer
	require.NoError(t, text.New(&buf).RenderError(stderrors.New("boom")))
	assert.Equal(t, "Error: boom\n", buf.String())
}
