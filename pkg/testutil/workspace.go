// pkg/testutil/workspace.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Declarative setup of workspaces and installed package versions

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Manifest renders a minimal typst.toml. Extra lines are appended verbatim, which
// is how tests add [tool.utpm] tables.
func Manifest(name, version string, extra ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[package]\nname = %q\nversion = %q\nentrypoint = \"main.typ\"\nauthors = [\"Tester\"]\nlicense = \"MIT\"\ndescription = \"A test package\"\n", name, version)
	for _, line := range extra {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteFile writes content to dir/rel, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ReadFile returns the content of dir/rel.
func ReadFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// Workspace writes a package workspace into dir: typst.toml, main.typ and any
// extra files keyed by slash-separated relative path.
func Workspace(t *testing.T, dir, name, version string, files map[string]string, extra ...string) string {
	t.Helper()
	WriteFile(t, dir, "typst.toml", Manifest(name, version, extra...))
	WriteFile(t, dir, "main.typ", "= "+name+"\n")
	for rel, content := range files {
		WriteFile(t, dir, rel, content)
	}
	return dir
}

// InstallPackage creates an installed package version with a manifest.
func (e *Environment) InstallPackage(namespace, name, version string) string {
	e.t.Helper()
	dir := e.PackageDir(namespace, name, version)
	Workspace(e.t, dir, name, version, nil)
	return dir
}
