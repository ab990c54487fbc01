package types

import (
	"path/filepath"

	"github.com/typst-community/utpm/pkg/config"
	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/registry"
	"github.com/typst-community/utpm/pkg/walker"
)

// FallbackNamespace is used when neither the command line, typst.toml nor the
// configuration name a namespace.
const FallbackNamespace = "local"

// Env carries what every command needs: resolved directories, configuration, the
// filesystem, a prompter and the registry client.
type Env struct {
	Paths    *paths.Paths
	Config   *config.Config
	FS       FS
	Prompter Prompter
	Registry *registry.Client
	// DryRun reports what would change without touching the disk.
	DryRun bool
}

// DefaultNamespace returns the configured default namespace.
func (e *Env) DefaultNamespace() string {
	if e.Config != nil && e.Config.Namespace.Default != "" {
		return e.Config.Namespace.Default
	}
	return FallbackNamespace
}

// Namespace picks the namespace a workspace is linked into: the explicit override,
// then [tool.utpm].namespace, then the configured default.
func (e *Env) Namespace(override string, m *manifest.Manifest) string {
	if override != "" {
		return override
	}
	if m != nil {
		return m.Namespace(e.DefaultNamespace())
	}
	return e.DefaultNamespace()
}

// Dir returns path resolved against the current directory, or the current
// directory itself when path is empty.
func (e *Env) Dir(path string) string {
	if path == "" {
		return e.Paths.CurrentDir()
	}
	path = paths.ExpandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(e.Paths.CurrentDir(), path)
}

// WalkOptions completes the ignore flags with the workspace excludes and the
// configured extra ignore file.
func (e *Env) WalkOptions(base walker.Options, m *manifest.Manifest) (walker.Options, error) {
	opts := base
	if m != nil {
		extra, err := m.Extra()
		if err != nil {
			return opts, err
		}
		opts.Excludes = append(append([]string{}, opts.Excludes...), extra.Exclude...)
	}
	if opts.CustomIgnore == "" && e.Config != nil {
		for _, name := range e.Config.Link.IgnoreFiles {
			if name != walker.TypstIgnoreFile && name != "" {
				opts.CustomIgnore = name
				break
			}
		}
	}
	return opts, nil
}
