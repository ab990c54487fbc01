package gitops

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/paths"
)

// DefaultRemote is the remote name used for clones.
const DefaultRemote = "origin"

// Signature identifies the author of a commit.
type Signature struct {
	Name  string
	Email string
}

// Repo is an opened working tree.
type Repo struct {
	Dir string

	repo     *git.Repository
	worktree *git.Worktree
	creds    Credentials
	logger   zerolog.Logger
}

func wrap(repo *git.Repository, dir string, creds Credentials) (*Repo, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrGit, "repository has no worktree").WithDetail("dir", dir)
	}
	return &Repo{
		Dir:      dir,
		repo:     repo,
		worktree: wt,
		creds:    creds,
		logger:   logging.GetLogger("gitops").With().Str("dir", dir).Logger(),
	}, nil
}

// Init creates an empty repository in dir.
func Init(dir string, creds Credentials) (*Repo, error) {
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGit, "failed to init %s", dir)
	}
	return wrap(repo, dir, creds)
}

// Open opens the repository at dir.
func Open(dir string, creds Credentials) (*Repo, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGit, "failed to open %s", dir)
	}
	return wrap(repo, dir, creds)
}

// Clone clones url into dir.
func Clone(ctx context.Context, url, dir string, creds Credentials) (*Repo, error) {
	auth, err := creds.Method(url)
	if err != nil {
		return nil, err
	}

	log := logging.GetLogger("gitops")
	log.Info().Str("url", url).Str("dir", dir).Msg("cloning")
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:        url,
		Auth:       auth,
		RemoteName: DefaultRemote,
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGit, "failed to clone %s", url).WithDetail("dir", dir)
	}
	return wrap(repo, dir, creds)
}

// CloneOrPull clones url into dir, or fast-forwards dir when it already has content.
func CloneOrPull(ctx context.Context, url, dir string, creds Credentials) (*Repo, error) {
	if !paths.HasContent(dir) {
		return Clone(ctx, url, dir, creds)
	}

	r, err := Open(dir, creds)
	if err != nil {
		return nil, err
	}
	r.logger.Info().Msg("content found, pulling")
	if err := r.Pull(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repo) remoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrGit, "remote %s not found", name)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", errors.Newf(errors.ErrGit, "remote %s has no url", name)
	}
	return urls[0], nil
}

// Pull fast-forwards the current branch from origin. Being up to date is not an error.
func (r *Repo) Pull(ctx context.Context) error {
	url, err := r.remoteURL(DefaultRemote)
	if err != nil {
		return err
	}
	auth, err := r.creds.Method(url)
	if err != nil {
		return err
	}

	err = r.worktree.PullContext(ctx, &git.PullOptions{RemoteName: DefaultRemote, Auth: auth})
	switch {
	case err == nil:
		r.logger.Info().Msg("fast forward done")
		return nil
	case stderrors.Is(err, git.NoErrAlreadyUpToDate):
		r.logger.Info().Msg("up to date, nothing to do")
		return nil
	case stderrors.Is(err, git.ErrNonFastForwardUpdate):
		return errors.Wrap(err, errors.ErrGit, "local branch diverged from origin, cannot fast-forward")
	default:
		return errors.Wrap(err, errors.ErrGit, "failed to pull")
	}
}

// Checkout switches to branch, creating it from HEAD when create is set.
func (r *Repo) Checkout(branch string, create bool) error {
	err := r.worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrGit, "failed to checkout %s", branch)
	}
	return nil
}

// Branch returns the short name of the checked out branch.
func (r *Repo) Branch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrGit, "failed to resolve HEAD")
	}
	return head.Name().Short(), nil
}

// Clean reports whether the worktree has no pending changes.
func (r *Repo) Clean() (bool, error) {
	status, err := r.worktree.Status()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrGit, "failed to read status")
	}
	return status.IsClean(), nil
}

// CommitAll stages every change and commits it. It returns the commit hash.
func (r *Repo) CommitAll(message string, who Signature) (string, error) {
	if err := r.worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", errors.Wrap(err, errors.ErrGit, "failed to stage changes")
	}

	sig := &object.Signature{Name: who.Name, Email: who.Email, When: time.Now()}
	hash, err := r.worktree.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrGit, "failed to commit")
	}
	r.logger.Info().Str("commit", hash.String()).Msg("commit created")
	return hash.String(), nil
}

// Push pushes branch to origin. Nothing to push is not an error.
func (r *Repo) Push(ctx context.Context, branch string) error {
	url, err := r.remoteURL(DefaultRemote)
	if err != nil {
		return err
	}
	auth, err := r.creds.Method(url)
	if err != nil {
		return err
	}

	ref := plumbing.NewBranchReferenceName(branch)
	err = r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: DefaultRemote,
		Auth:       auth,
		RefSpecs:   []config.RefSpec{config.RefSpec(ref.String() + ":" + ref.String())},
	})
	if err != nil && !stderrors.Is(err, git.NoErrAlreadyUpToDate) {
		return errors.Wrapf(err, errors.ErrGit, "failed to push %s", branch)
	}
	r.logger.Info().Str("branch", branch).Msg("pushed")
	return nil
}
