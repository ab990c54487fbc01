package internal

import (
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/filesystem"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/spec"
	"github.com/typst-community/utpm/pkg/types"
	"github.com/typst-community/utpm/pkg/walker"
)

// LinkRequest describes a workspace to place into the package tree.
type LinkRequest struct {
	Source    string
	Namespace string
	Force     bool
	NoCopy    bool
	Ignore    walker.Options
}

// LoadWorkspace reads and sanity checks the manifest of dir.
func LoadWorkspace(dir string) (*manifest.Manifest, error) {
	m, err := manifest.Load(dir)
	if err != nil {
		return nil, err
	}
	if m.Package.Name == "" {
		return nil, errors.New(errors.ErrManifest, "package name is not set").WithDetail("dir", dir)
	}
	if _, err := m.Semver(); err != nil {
		return nil, err
	}
	return m, nil
}

// LinkWorkspace copies (or symlinks) a workspace to
// <packages>/<namespace>/<name>/<version>.
func LinkWorkspace(e *types.Env, req LinkRequest) (*types.LinkResult, error) {
	log := logging.GetLogger("commands.internal")

	m, err := LoadWorkspace(req.Source)
	if err != nil {
		return nil, err
	}

	sp := spec.Spec{
		Namespace: e.Namespace(req.Namespace, m),
		Name:      m.Package.Name,
		Version:   m.Package.Version,
	}
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	dest := e.Paths.PackageDir(sp.Namespace, sp.Name, sp.Version)

	_, statErr := e.FS.Lstat(dest)
	exists := statErr == nil
	if exists && !req.Force {
		return nil, errors.AlreadyExists(sp.Name, sp.Version).WithDetail("destination", dest)
	}

	result := &types.LinkResult{
		Spec:        sp.String(),
		Source:      req.Source,
		Destination: dest,
		Symlink:     req.NoCopy,
		Replaced:    exists,
		Import:      sp.Import(),
		DryRun:      e.DryRun,
	}

	if !req.NoCopy {
		opts, err := e.WalkOptions(req.Ignore, m)
		if err != nil {
			return nil, err
		}
		entries, err := walker.Walk(req.Source, opts)
		if err != nil {
			return nil, err
		}
		result.Files = walker.Paths(entries)
	}

	if e.DryRun {
		log.Info().Str("destination", dest).Msg("dry-run, nothing written")
		return result, nil
	}

	if exists {
		log.Warn().Str("destination", dest).Msg("replacing existing package")
		if err := e.FS.RemoveAll(dest); err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to remove %s", dest)
		}
	}

	if req.NoCopy {
		if err := filesystem.SymlinkDir(e.FS, req.Source, dest); err != nil {
			return nil, err
		}
	} else if err := filesystem.CopyFiles(e.FS, req.Source, dest, result.Files); err != nil {
		return nil, err
	}

	log.Info().Str("spec", result.Spec).Str("destination", dest).Bool("symlink", req.NoCopy).Msg("workspace linked")
	return result, nil
}
