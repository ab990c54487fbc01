package install

import (
	"context"
	"strings"

	"github.com/typst-community/utpm/pkg/commands/internal"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/filesystem"
	"github.com/typst-community/utpm/pkg/gitops"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/spec"
	"github.com/typst-community/utpm/pkg/types"
	"github.com/typst-community/utpm/pkg/walker"
)

// InstallOptions defines the options for the Install command.
type InstallOptions struct {
	Env *types.Env
	// URL is a git URL or a local directory. Empty installs every dependency listed
	// in [tool.utpm].dependencies of the current workspace.
	URL string
	// Force relinks versions that are already installed.
	Force bool
	// Namespace overrides the namespace dependencies are installed into.
	Namespace string
}

// Install fetches packages into a scratch directory and links them into the
// package tree.
func Install(ctx context.Context, opts InstallOptions) (*types.InstallResult, error) {
	log := logging.GetLogger("commands.install")
	log.Debug().Str("command", "Install").Str("url", opts.URL).Msg("Executing command")

	sources := []string{opts.URL}
	if opts.URL == "" {
		deps, err := Dependencies(opts.Env)
		if err != nil {
			return nil, err
		}
		sources = deps
	}

	result := &types.InstallResult{Packages: []types.InstalledPackage{}, DryRun: opts.Env.DryRun}
	if opts.Env.DryRun {
		log.Warn().Msg("Dry-run, can't do anything")
		for _, src := range sources {
			result.Packages = append(result.Packages, types.InstalledPackage{Source: src, Skipped: true})
		}
		return result, nil
	}

	for _, src := range sources {
		pkg, err := installOne(ctx, opts.Env, src, opts.Namespace, opts.Force)
		if err != nil {
			log.Error().Err(err).Str("source", src).Msg("Install failed")
			return result, err
		}
		result.Packages = append(result.Packages, *pkg)
	}

	log.Info().Str("command", "Install").Int("packages", len(result.Packages)).Msg("Command finished")
	return result, nil
}

// Dependencies returns [tool.utpm].dependencies of the current workspace.
func Dependencies(env *types.Env) ([]string, error) {
	m, err := manifest.Load(env.Paths.CurrentDir())
	if err != nil {
		return nil, err
	}
	extra, err := m.Extra()
	if err != nil {
		return nil, err
	}
	return extra.Dependencies, nil
}

// IsRemote reports whether src is fetched with git rather than copied.
func IsRemote(src string) bool {
	for _, prefix := range []string{"git@", "git://", "ssh://", "http://", "https://", "file://"} {
		if strings.HasPrefix(src, prefix) {
			return true
		}
	}
	return false
}

func installOne(ctx context.Context, env *types.Env, src, namespace string, force bool) (*types.InstalledPackage, error) {
	log := logging.GetLogger("commands.install").With().Str("source", src).Logger()
	defer logging.LogOperationStart(log, "install")()

	tmp := env.Paths.TmpDir()
	if err := env.FS.RemoveAll(tmp); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to clean %s", tmp)
	}
	defer func() { _ = env.FS.RemoveAll(tmp) }()

	if IsRemote(src) {
		if _, err := gitops.Clone(ctx, src, tmp, gitops.DefaultCredentials(env.Config.Git.KeyPath)); err != nil {
			return nil, err
		}
	} else if err := filesystem.CopyTree(env.FS, env.Dir(src), tmp); err != nil {
		return nil, err
	}

	if !manifest.Exists(tmp) {
		log.Error().Msg("x " + src)
		return nil, errors.Newf(errors.ErrManifest, "%s has no typst.toml", src).WithDetail("source", src)
	}
	m, err := internal.LoadWorkspace(tmp)
	if err != nil {
		return nil, err
	}

	sp := spec.Spec{Namespace: env.Namespace(namespace, m), Name: m.Package.Name, Version: m.Package.Version}
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	ns := sp.Namespace
	pkg := &types.InstalledPackage{
		Source:      src,
		Spec:        sp.String(),
		Destination: env.Paths.PackageDir(ns, sp.Name, sp.Version),
	}

	if _, err := env.FS.Lstat(pkg.Destination); err == nil && !force {
		log.Info().Msg("~ " + m.Package.Name + ":" + m.Package.Version)
		pkg.Skipped = true
		return pkg, nil
	}

	log.Info().Str("package", m.Package.Name).Msg("Installing")
	if _, err := internal.LinkWorkspace(env, internal.LinkRequest{
		Source:    tmp,
		Namespace: ns,
		Force:     force,
		Ignore:    walker.DefaultOptions(),
	}); err != nil {
		return nil, err
	}

	log.Info().Msg("+ " + m.Package.Name + ":" + m.Package.Version)
	return pkg, nil
}
