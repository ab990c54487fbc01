package clone

import (
	"context"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/filesystem"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/spec"
	"github.com/typst-community/utpm/pkg/types"
)

// CloneOptions defines the options for the Clone command.
type CloneOptions struct {
	Env *types.Env
	// Package is @namespace/name:version, name:version or name (latest @preview).
	Package string
	// Path is where the package is copied. Empty means the current directory.
	Path string
	// DownloadOnly fills the package cache without copying anything.
	DownloadOnly bool
	// Force clones into a directory that already has content.
	Force bool
	// Redownload fetches a @preview package again even when it is cached.
	Redownload bool
	// Symlink links the cached package instead of copying it.
	Symlink bool
}

// Clone copies an installed or downloaded package into a directory, typically to
// start a project from a template.
func Clone(ctx context.Context, opts CloneOptions) (*types.CloneResult, error) {
	log := logging.GetLogger("commands.clone")
	log.Debug().Str("command", "Clone").Str("package", opts.Package).Msg("Executing command")

	env := opts.Env
	target := env.Dir(opts.Path)

	if !opts.DownloadOnly && paths.HasContent(target) {
		if !opts.Force {
			return nil, errors.New(errors.ErrContentFound, "").WithDetail("path", target)
		}
		log.Warn().Str("path", target).Msg("force used, ignore content")
	}

	sp, err := spec.ParseCloneRef(opts.Package)
	if err != nil {
		return nil, err
	}
	if sp.Version == "" {
		latest, err := env.Registry.Latest(ctx, sp.Name)
		if err != nil {
			return nil, err
		}
		sp.Version = latest.Version
	}

	source := env.Paths.PackageDir(sp.Namespace, sp.Name, sp.Version)
	result := &types.CloneResult{
		Spec:         sp.String(),
		Source:       source,
		Symlink:      opts.Symlink,
		DownloadOnly: opts.DownloadOnly,
		DryRun:       env.DryRun,
	}
	if !opts.DownloadOnly {
		result.Destination = target
	}

	preview := sp.Namespace == paths.PreviewNamespace
	_, statErr := env.FS.Stat(source)
	cached := statErr == nil

	switch {
	case cached && (!opts.Redownload || !preview):
		log.Info().Str("path", source).Msg("Package found locally")
		if opts.DownloadOnly {
			return result, nil
		}
		return result, place(env, source, target, opts)
	case !preview && !cached:
		return nil, errors.Newf(errors.ErrPackageNotExist, "%s is not installed and only @preview packages can be downloaded", sp).
			WithDetail("path", source)
	}

	if !env.DryRun {
		if cached {
			log.Info().Str("path", source).Msg("removing cached package before redownload")
			if err := env.FS.RemoveAll(source); err != nil {
				return nil, errors.Wrapf(err, errors.ErrIO, "failed to remove %s", source)
			}
		}
		if err := env.Registry.Download(ctx, sp.Name, sp.Version, source); err != nil {
			return nil, err
		}
	}
	result.Downloaded = true
	log.Info().Str("path", source).Msg("package downloaded")

	if opts.DownloadOnly {
		return result, nil
	}
	if err := place(env, source, target, opts); err != nil {
		return nil, err
	}

	log.Info().Str("command", "Clone").Str("spec", result.Spec).Msg("Command finished")
	return result, nil
}

func place(env *types.Env, source, target string, opts CloneOptions) error {
	if env.DryRun {
		return nil
	}
	if !opts.Symlink {
		return filesystem.CopyTree(env.FS, source, target)
	}

	if _, err := env.FS.Lstat(target); err == nil {
		remove := env.FS.Remove
		if opts.Force {
			remove = env.FS.RemoveAll
		}
		if err := remove(target); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to replace %s", target)
		}
	}
	return filesystem.SymlinkDir(env.FS, source, target)
}
