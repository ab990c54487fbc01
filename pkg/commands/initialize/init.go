package initialize

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/types"
)

// Defaults used when neither a flag nor an answer provides a value.
const (
	DefaultVersion    = "1.0.0"
	DefaultEntrypoint = "main.typ"
	DefaultLicense    = "Unlicense"
)

// TemplateOptions fills the optional [template] table.
type TemplateOptions struct {
	Path       string
	Entrypoint string
	Thumbnail  string
}

// InitOptions defines the options for the Init command.
type InitOptions struct {
	Env *types.Env
	// Interactive asks the questions through Env.Prompter. Flags provide the defaults.
	Interactive bool
	// Force overwrites an existing typst.toml.
	Force bool
	// Populate creates README.md, LICENSE, examples/tests.typ and the entrypoint.
	Populate bool

	Name        string
	Version     string
	Entrypoint  string
	Authors     []string
	License     string
	Description string
	Repository  string
	Homepage    string
	Keywords    []string
	Categories  []string
	Disciplines []string
	Compiler    string
	Exclude     []string
	// Namespace is written to [tool.utpm]. Empty uses the configured default.
	Namespace string
	Template  *TemplateOptions
}

// Init creates typst.toml in the current directory.
func Init(opts InitOptions) (*types.InitResult, error) {
	log := logging.GetLogger("commands.initialize")
	log.Debug().Str("command", "Init").Msg("Executing command")

	dir := opts.Env.Paths.CurrentDir()
	target := paths.ManifestPath(dir)
	result := &types.InitResult{Path: target, Files: []string{}, DryRun: opts.Env.DryRun}

	if paths.IsFile(target) && !opts.Force {
		log.Info().Str("path", target).Msg("typst.toml already exists")
		return result, nil
	}
	if opts.Force {
		log.Warn().Msg("--force is a dangerous flag, use it cautiously")
	}

	applyDefaults(&opts)
	if opts.Interactive {
		if err := ask(opts.Env.Prompter, &opts); err != nil {
			return nil, err
		}
	}

	m, err := build(opts, opts.Env.Namespace(opts.Namespace, nil))
	if err != nil {
		return nil, err
	}
	result.Manifest = m
	result.Created = true
	result.Files = append(result.Files, paths.ManifestFile)

	var files []generatedFile
	if opts.Populate {
		files = populate(m)
		for _, f := range files {
			result.Files = append(result.Files, f.rel)
		}
	}

	if opts.Env.DryRun {
		log.Info().Str("path", target).Msg("dry-run, nothing written")
		return result, nil
	}

	if err := manifest.Write(dir, m); err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := write(opts.Env.FS, dir, f); err != nil {
			return nil, err
		}
	}

	log.Info().Str("command", "Init").Str("path", target).Msg("Command finished")
	return result, nil
}

func applyDefaults(opts *InitOptions) {
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.Entrypoint == "" {
		opts.Entrypoint = DefaultEntrypoint
	}
}

func build(opts InitOptions, namespace string) (*manifest.Manifest, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a package name is required (use --name)")
	}
	if _, err := semver.StrictNewVersion(opts.Version); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSemver, "invalid version %q", opts.Version)
	}
	if opts.Compiler != "" {
		if _, err := semver.NewVersion(opts.Compiler); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSemver, "invalid compiler version %q", opts.Compiler)
		}
	}

	m := &manifest.Manifest{
		Package: manifest.Package{
			Name:        strings.TrimSpace(opts.Name),
			Version:     opts.Version,
			Entrypoint:  opts.Entrypoint,
			Authors:     clean(opts.Authors),
			License:     opts.License,
			Description: opts.Description,
			Repository:  opts.Repository,
			Homepage:    opts.Homepage,
			Keywords:    clean(opts.Keywords),
			Categories:  clean(opts.Categories),
			Disciplines: clean(opts.Disciplines),
			Compiler:    opts.Compiler,
			Exclude:     clean(opts.Exclude),
		},
	}
	if t := opts.Template; t != nil && t.Path != "" {
		entry := t.Entrypoint
		if entry == "" {
			entry = DefaultEntrypoint
		}
		m.Template = &manifest.Template{Path: t.Path, Entrypoint: entry, Thumbnail: t.Thumbnail}
	}

	extra := manifest.DefaultExtra()
	extra.Namespace = namespace
	if err := m.SetExtra(extra); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// clean trims entries and drops empty ones, so "a, b," becomes [a b].
func clean(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func split(s string) []string {
	return clean(strings.Split(s, ","))
}

func write(fsys types.FS, dir string, f generatedFile) error {
	path := filepath.Join(dir, filepath.FromSlash(f.rel))
	if _, err := fsys.Stat(path); err == nil {
		log := logging.GetLogger("commands.initialize")
		log.Info().Str("path", path).Msg("keeping existing file")
		return nil
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create %s", filepath.Dir(path))
	}
	if err := fsys.WriteFile(path, []byte(f.content), os.FileMode(0644)); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to write %s", path)
	}
	return nil
}
