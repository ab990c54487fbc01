// cmd/utpm/root_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Temporary data, cache and workspace directories
// PURPOSE: Test the command tree, global flags and output formats end to end

package utpm_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/cmd/utpm"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/testutil"
)

type dirs struct {
	data, cache, workspace string
}

// isolate points every utpm directory at a temporary location.
func isolate(t *testing.T) dirs {
	t.Helper()
	root := t.TempDir()
	d := dirs{
		data:      filepath.Join(root, "data"),
		cache:     filepath.Join(root, "cache"),
		workspace: filepath.Join(root, "workspace"),
	}
	t.Setenv("UTPM_DATA_DIR", d.data)
	t.Setenv("UTPM_CACHE_DIR", d.cache)
	t.Setenv("UTPM_CURRENT_DIR", d.workspace)
	t.Setenv("UTPM_CONFIG_FILE", filepath.Join(root, "config.toml"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return d
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := utpm.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "utpm")
}

func TestVersionCmd(t *testing.T) {
	isolate(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "utpm version")
	assert.Contains(t, out, "commit:")
}

func TestNoCommand(t *testing.T) {
	isolate(t)
	_, err := run(t)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "no command specified")
}

func TestGenerate(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "generate", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "utpm")
		})
	}

	_, err := run(t, "gen", "tcsh")
	assert.ErrorContains(t, err, "unsupported shell")
}

func TestInvalidOutputFormat(t *testing.T) {
	isolate(t)
	_, err := run(t, "pkg", "path", "-o", "xml")
	assert.Error(t, err)
}

func TestPackagesPath_JSON(t *testing.T) {
	d := isolate(t)

	out, err := run(t, "pkg", "path", "-o", "json")
	require.NoError(t, err)

	var result struct {
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, filepath.Join(d.data, "typst", "packages"), result.Path)
}

func TestWorkspaceLink(t *testing.T) {
	d := isolate(t)
	testutil.Workspace(t, d.workspace, "demo", "0.1.0", map[string]string{"lib.typ": "#let x = 1"})

	_, err := run(t, "ws", "link")
	require.NoError(t, err)

	dest := filepath.Join(d.data, "typst", "packages", "local", "demo", "0.1.0")
	testutil.AssertFileContains(t, filepath.Join(dest, "lib.typ"), "#let x = 1")

	out, err := run(t, "pkg", "list", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "demo")
}

func TestWorkspaceLink_DryRun(t *testing.T) {
	d := isolate(t)
	testutil.Workspace(t, d.workspace, "demo", "0.1.0", nil)

	_, err := run(t, "--dry-run", "ws", "l")
	require.NoError(t, err)
	testutil.AssertNotExists(t, filepath.Join(d.data, "typst", "packages", "local", "demo"))
	testutil.AssertNotExists(t, d.cache)
}

func TestWorkspaceMetadata(t *testing.T) {
	d := isolate(t)
	testutil.Workspace(t, d.workspace, "demo", "0.1.0", nil)

	out, err := run(t, "ws", "m", "version", "-o", "json")
	require.NoError(t, err)

	var result struct {
		Fields []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Fields, 1)
	assert.Equal(t, "0.1.0", result.Fields[0].Value)
}

func TestGuide(t *testing.T) {
	isolate(t)
	out, err := run(t, "guide", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "guide")
	assert.Contains(t, out, "publishing")

	out, err = run(t, "guide", "configuration")
	require.NoError(t, err)
	assert.Contains(t, out, "UTPM_REGISTRY_INDEX_URL")

	_, err = run(t, "guide", "nope")
	assert.Error(t, err)
}

func TestGenConfig(t *testing.T) {
	d := isolate(t)

	out, err := run(t, "gen-config")
	require.NoError(t, err)
	assert.Contains(t, out, "[registry]")

	target := filepath.Join(d.data, "config.toml")
	_, err = run(t, "gen-config", "-w", target)
	require.NoError(t, err)
	testutil.AssertFileContains(t, target, "[namespace]")

	_, err = run(t, "gen-config", "-w", target)
	assert.Error(t, err)
}
