package publisher

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/rs/zerolog"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
)

// User is the authenticated GitHub account.
type User struct {
	Login string
	Name  string
	Email string
}

// PullRequest describes the submission opened against the upstream repository.
type PullRequest struct {
	Owner string
	Repo  string
	Title string
	Head  string
	Base  string
	Body  string
}

// GitHub is the subset of the GitHub API used to publish a package.
type GitHub interface {
	CurrentUser(ctx context.Context) (User, error)
	// EnsureFork returns the SSH clone URL of the user's fork of owner/repo,
	// creating the fork when it does not exist yet.
	EnsureFork(ctx context.Context, owner, repo string) (string, error)
	OpenPullRequest(ctx context.Context, pr PullRequest) (string, error)
}

// Client implements GitHub with go-github.
type Client struct {
	gh     *github.Client
	logger zerolog.Logger
}

// ClientOption customises a Client.
type ClientOption func(*Client) error

// WithBaseURL points the client at another API endpoint (GitHub Enterprise, tests).
func WithBaseURL(base string) ClientOption {
	return func(c *Client) error {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "invalid GitHub API url %s", base)
		}
		c.gh.BaseURL = u
		return nil
	}
}

// WithHTTPClient replaces the transport used for API calls.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) error {
		base := c.gh.BaseURL
		c.gh = github.NewClient(h)
		c.gh.BaseURL = base
		return nil
	}
}

// NewClient creates an authenticated GitHub client. An empty token is an error
// because every publishing step needs write access.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, errors.New(errors.ErrGitHub, "a GitHub token is required, set UTPM_GITHUB_TOKEN")
	}
	c := &Client{
		gh:     github.NewClient(nil),
		logger: logging.GetLogger("publisher"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.gh = c.gh.WithAuthToken(token)
	return c, nil
}

// CurrentUser returns the account owning the token. Missing name or email fall
// back to the login and its noreply address.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	u, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return User{}, errors.Wrap(err, errors.ErrGitHub, "failed to fetch the authenticated user")
	}
	user := User{Login: u.GetLogin(), Name: u.GetName(), Email: u.GetEmail()}
	if user.Name == "" {
		user.Name = user.Login
	}
	if user.Email == "" {
		user.Email = fmt.Sprintf("%d+%s@users.noreply.github.com", u.GetID(), user.Login)
	}
	return user, nil
}

// EnsureFork implements GitHub.
func (c *Client) EnsureFork(ctx context.Context, owner, repo string) (string, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return "", err
	}

	existing, resp, err := c.gh.Repositories.Get(ctx, user.Login, repo)
	switch {
	case err == nil && existing.GetFork():
		c.logger.Info().Str("fork", existing.GetFullName()).Msg("fork found")
		return existing.GetSSHURL(), nil
	case err == nil:
		return "", errors.Newf(errors.ErrGitHub, "%s/%s exists but is not a fork of %s/%s", user.Login, repo, owner, repo)
	case resp == nil || resp.StatusCode != http.StatusNotFound:
		return "", errors.Wrapf(err, errors.ErrGitHub, "failed to look up %s/%s", user.Login, repo)
	}

	fork, _, err := c.gh.Repositories.CreateFork(ctx, owner, repo, &github.RepositoryCreateForkOptions{})
	if err != nil {
		var accepted *github.AcceptedError
		if !stderrors.As(err, &accepted) {
			return "", errors.Wrapf(err, errors.ErrGitHub, "failed to fork %s/%s", owner, repo)
		}
		// fork creation is asynchronous, the URL is predictable
		c.logger.Info().Msg("fork scheduled")
		return fmt.Sprintf("git@github.com:%s/%s.git", user.Login, repo), nil
	}
	c.logger.Info().Str("fork", fork.GetFullName()).Msg("fork created")
	return fork.GetSSHURL(), nil
}

// OpenPullRequest implements GitHub and returns the pull request URL.
func (c *Client) OpenPullRequest(ctx context.Context, pr PullRequest) (string, error) {
	created, _, err := c.gh.PullRequests.Create(ctx, pr.Owner, pr.Repo, &github.NewPullRequest{
		Title: github.String(pr.Title),
		Head:  github.String(pr.Head),
		Base:  github.String(pr.Base),
		Body:  github.String(pr.Body),
	})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrGitHub, "failed to open pull request on %s/%s", pr.Owner, pr.Repo)
	}
	c.logger.Info().Str("url", created.GetHTMLURL()).Msg("pull request opened")
	return created.GetHTMLURL(), nil
}
