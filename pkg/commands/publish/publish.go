// Package publish submits a workspace to the typst/packages repository: it copies the
// package into a fork, commits it on a dedicated branch and opens a pull request.
package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/typst-community/utpm/pkg/commands/internal"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/filesystem"
	"github.com/typst-community/utpm/pkg/gitops"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/publisher"
	"github.com/typst-community/utpm/pkg/spec"
	"github.com/typst-community/utpm/pkg/types"
	"github.com/typst-community/utpm/pkg/walker"
)

// Repository is the part of a git checkout publish works with.
type Repository interface {
	Checkout(branch string, create bool) error
	CommitAll(message string, who gitops.Signature) (string, error)
	Push(ctx context.Context, branch string) error
}

// CloneFunc clones url into dir, or updates dir when it is already a checkout.
type CloneFunc func(ctx context.Context, url, dir string) (Repository, error)

// PublishOptions defines the options for the Publish command.
type PublishOptions struct {
	Env     *types.Env
	Path    string
	Ignore  walker.Options
	Message string
	// PrepareOnly stops after the commit, leaving push and pull request to the user.
	PrepareOnly bool

	// GitHub and Clone default to the real API and go-git.
	GitHub publisher.GitHub
	Clone  CloneFunc
}

// Publish prepares the workspace for submission to @preview.
func Publish(ctx context.Context, opts PublishOptions) (*types.PublishResult, error) {
	log := logging.GetLogger("commands.publish")
	log.Debug().Str("command", "Publish").Msg("Executing command")
	defer logging.LogOperationStart(log, "publish")()

	env := opts.Env
	dir := env.Dir(opts.Path)

	m, err := internal.LoadWorkspace(dir)
	if err != nil {
		return nil, err
	}

	sp := spec.Spec{Namespace: paths.PreviewNamespace, Name: m.Package.Name, Version: m.Package.Version}
	if _, err := spec.ParseSpec(sp.String()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrPackageFormat, "%s is not a valid @preview package", sp)
	}

	files, err := packageFiles(env, dir, opts.Ignore, m)
	if err != nil {
		return nil, err
	}

	repoDir := env.Paths.LocalPackagesRepo()
	result := &types.PublishResult{
		Spec:        sp.String(),
		PackagePath: filepath.Join(repoDir, "packages", sp.Namespace, sp.Name, sp.Version),
		Files:       files,
		Branch:      sp.Name + "-" + sp.Version,
		Prepared:    opts.PrepareOnly,
		DryRun:      env.DryRun,
	}
	log.Info().Str("spec", result.Spec).Int("files", len(files)).Msg("package validated")

	if env.DryRun {
		log.Info().Msg("dry-run, nothing published")
		return result, nil
	}

	gh := opts.GitHub
	if gh == nil {
		client, err := publisher.NewClient(os.Getenv(gitops.EnvGitHubToken))
		if err != nil {
			return nil, err
		}
		gh = client
	}
	cloneRepo := opts.Clone
	if cloneRepo == nil {
		cloneRepo = defaultClone(env)
	}

	cfg := env.Config.Publish
	user, err := gh.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	result.Fork, err = gh.EnsureFork(ctx, cfg.UpstreamOwner, cfg.UpstreamRepo)
	if err != nil {
		return nil, err
	}

	repo, err := cloneRepo(ctx, result.Fork, repoDir)
	if err != nil {
		return nil, err
	}
	if err := repo.Checkout(cfg.BaseBranch, false); err != nil {
		return nil, err
	}
	if err := repo.Checkout(result.Branch, true); err != nil {
		log.Debug().Err(err).Str("branch", result.Branch).Msg("branch exists, reusing it")
		if err := repo.Checkout(result.Branch, false); err != nil {
			return nil, err
		}
	}

	if err := env.FS.RemoveAll(result.PackagePath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to clear %s", result.PackagePath)
	}
	if err := filesystem.CopyFiles(env.FS, dir, result.PackagePath, files); err != nil {
		return nil, err
	}

	message := opts.Message
	if message == "" {
		message = fmt.Sprintf("%s:%s using utpm", sp.Name, sp.Version)
	}
	result.Commit, err = repo.CommitAll(message, gitops.Signature{Name: user.Name, Email: user.Email})
	if err != nil {
		return nil, err
	}

	if opts.PrepareOnly {
		log.Info().Str("path", repoDir).Msg("prepared, push the branch and open a pull request to finish")
		return result, nil
	}

	if err := repo.Push(ctx, result.Branch); err != nil {
		return nil, err
	}
	result.PullRequest, err = gh.OpenPullRequest(ctx, publisher.PullRequest{
		Owner: cfg.UpstreamOwner,
		Repo:  cfg.UpstreamRepo,
		Title: fmt.Sprintf("%s:%s", sp.Name, sp.Version),
		Head:  user.Login + ":" + result.Branch,
		Base:  cfg.BaseBranch,
		Body:  publisher.SubmissionBody,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "Publish").Str("pull_request", result.PullRequest).Msg("Command finished")
	return result, nil
}

// packageFiles lists the files to submit and checks the package is complete.
func packageFiles(env *types.Env, dir string, ignore walker.Options, m *manifest.Manifest) ([]string, error) {
	walkOpts, err := env.WalkOptions(ignore, m)
	if err != nil {
		return nil, err
	}
	entries, err := walker.Walk(dir, walkOpts)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir {
			files = append(files, filepath.ToSlash(e.Path))
		}
	}

	switch {
	case len(files) == 0:
		return nil, errors.New(errors.ErrNoFiles, "").WithDetail("path", dir)
	case !slices.Contains(files, paths.ManifestFile):
		return nil, errors.New(errors.ErrOmittedTypstFile, "")
	case !slices.Contains(files, filepath.ToSlash(filepath.Clean(m.Package.Entrypoint))):
		return nil, errors.New(errors.ErrOmittedEntryfile, "").WithDetail("entrypoint", m.Package.Entrypoint)
	}
	return files, nil
}

func defaultClone(env *types.Env) CloneFunc {
	creds := gitops.DefaultCredentials(env.Config.Git.KeyPath)
	return func(ctx context.Context, url, dir string) (Repository, error) {
		return gitops.CloneOrPull(ctx, url, dir, creds)
	}
}
