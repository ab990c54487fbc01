// pkg/commands/publish/publish_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: fake GitHub API and repository, real filesystem
// PURPOSE: Test package validation, fork checkout and pull request submission

package publish_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/pkg/commands/publish"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/gitops"
	"github.com/typst-community/utpm/pkg/publisher"
	"github.com/typst-community/utpm/pkg/testutil"
)

type fakeGitHub struct {
	forks []string
	prs   []publisher.PullRequest
}

func (f *fakeGitHub) CurrentUser(ctx context.Context) (publisher.User, error) {
	return publisher.User{Login: "octo", Name: "Octo Cat", Email: "octo@example.com"}, nil
}

func (f *fakeGitHub) EnsureFork(ctx context.Context, owner, repo string) (string, error) {
	f.forks = append(f.forks, owner+"/"+repo)
	return "git@github.com:octo/" + repo + ".git", nil
}

func (f *fakeGitHub) OpenPullRequest(ctx context.Context, pr publisher.PullRequest) (string, error) {
	f.prs = append(f.prs, pr)
	return "https://github.com/typst/packages/pull/1", nil
}

type fakeRepo struct {
	url       string
	dir       string
	branches  map[string]bool
	checkouts []string
	commits   []string
	author    gitops.Signature
	pushed    []string
}

func (r *fakeRepo) Checkout(branch string, create bool) error {
	if create && r.branches[branch] {
		return errors.Newf(errors.ErrGit, "branch %s exists", branch)
	}
	r.branches[branch] = true
	r.checkouts = append(r.checkouts, branch)
	return nil
}

func (r *fakeRepo) CommitAll(message string, who gitops.Signature) (string, error) {
	r.commits = append(r.commits, message)
	r.author = who
	return "abc123", nil
}

func (r *fakeRepo) Push(ctx context.Context, branch string) error {
	r.pushed = append(r.pushed, branch)
	return nil
}

type fixture struct {
	env  *testutil.Environment
	gh   *fakeGitHub
	repo *fakeRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		env:  testutil.NewEnvironment(t),
		gh:   &fakeGitHub{},
		repo: &fakeRepo{branches: map[string]bool{"main": true}},
	}
	testutil.Workspace(t, f.env.CurrentDir, "cool-pkg", "0.2.0", map[string]string{
		"README.md":     "# cool-pkg",
		"notes.pdf":     "ignored",
		".gitignore":    "*.pdf\n",
		"lib/utils.typ": "#let x = 1",
	})
	return f
}

func (f *fixture) options() publish.PublishOptions {
	return publish.PublishOptions{
		Env:    f.env.Env,
		GitHub: f.gh,
		Clone: func(ctx context.Context, url, dir string) (publish.Repository, error) {
			f.repo.url = url
			f.repo.dir = dir
			return f.repo, nil
		},
	}
}

func TestPublish(t *testing.T) {
	f := newFixture(t)

	result, err := publish.Publish(context.Background(), f.options())
	require.NoError(t, err)

	assert.Equal(t, "@preview/cool-pkg:0.2.0", result.Spec)
	assert.ElementsMatch(t, []string{"typst.toml", "main.typ", "README.md", "lib/utils.typ"}, result.Files)
	assert.Equal(t, "cool-pkg-0.2.0", result.Branch)
	assert.Equal(t, "abc123", result.Commit)
	assert.Equal(t, "https://github.com/typst/packages/pull/1", result.PullRequest)
	assert.Equal(t, "git@github.com:octo/packages.git", result.Fork)

	assert.Equal(t, []string{"typst/packages"}, f.gh.forks)
	assert.Equal(t, result.Fork, f.repo.url)
	assert.Equal(t, f.env.Env.Paths.LocalPackagesRepo(), f.repo.dir)
	assert.Equal(t, []string{"main", "cool-pkg-0.2.0"}, f.repo.checkouts)
	assert.Equal(t, []string{"cool-pkg:0.2.0 using utpm"}, f.repo.commits)
	assert.Equal(t, gitops.Signature{Name: "Octo Cat", Email: "octo@example.com"}, f.repo.author)
	assert.Equal(t, []string{"cool-pkg-0.2.0"}, f.repo.pushed)

	require.Len(t, f.gh.prs, 1)
	pr := f.gh.prs[0]
	assert.Equal(t, "typst", pr.Owner)
	assert.Equal(t, "packages", pr.Repo)
	assert.Equal(t, "octo:cool-pkg-0.2.0", pr.Head)
	assert.Equal(t, "main", pr.Base)
	assert.Equal(t, "cool-pkg:0.2.0", pr.Title)
	assert.Equal(t, publisher.SubmissionBody, pr.Body)

	dest := filepath.Join(f.env.Env.Paths.LocalPackagesRepo(), "packages", "preview", "cool-pkg", "0.2.0")
	assert.Equal(t, dest, result.PackagePath)
	assert.ElementsMatch(t, result.Files, testutil.ListFiles(t, dest))
}

func TestPublish_PrepareOnly(t *testing.T) {
	f := newFixture(t)
	opts := f.options()
	opts.PrepareOnly = true
	opts.Message = "custom message"

	result, err := publish.Publish(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, result.Prepared)
	assert.Equal(t, []string{"custom message"}, f.repo.commits)
	assert.Empty(t, f.repo.pushed)
	assert.Empty(t, f.gh.prs)
	assert.Empty(t, result.PullRequest)
}

func TestPublish_ExistingBranch(t *testing.T) {
	f := newFixture(t)
	f.repo.branches["cool-pkg-0.2.0"] = true

	_, err := publish.Publish(context.Background(), f.options())
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "cool-pkg-0.2.0"}, f.repo.checkouts)
}

func TestPublish_ReplacesPreviousSubmission(t *testing.T) {
	f := newFixture(t)
	dest := filepath.Join(f.env.Env.Paths.LocalPackagesRepo(), "packages", "preview", "cool-pkg", "0.2.0")
	stale := testutil.WriteFile(t, dest, "old.typ", "stale")

	_, err := publish.Publish(context.Background(), f.options())
	require.NoError(t, err)
	testutil.AssertNotExists(t, stale)
}

func TestPublish_InvalidName(t *testing.T) {
	f := newFixture(t)
	testutil.Workspace(t, f.env.CurrentDir, "Not_Valid", "0.2.0", nil)

	_, err := publish.Publish(context.Background(), f.options())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageFormat))
	assert.Empty(t, f.gh.forks)
}

func TestPublish_OmittedFiles(t *testing.T) {
	tests := []struct {
		name   string
		ignore string
		code   errors.ErrorCode
	}{
		{name: "manifest ignored", ignore: "typst.toml\n", code: errors.ErrOmittedTypstFile},
		{name: "entrypoint ignored", ignore: "main.typ\n", code: errors.ErrOmittedEntryfile},
		{name: "everything ignored", ignore: "*\n", code: errors.ErrNoFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			testutil.WriteFile(t, f.env.CurrentDir, ".typstignore", tt.ignore)

			_, err := publish.Publish(context.Background(), f.options())
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Empty(t, f.gh.forks)
		})
	}
}

func TestPublish_DryRun(t *testing.T) {
	f := newFixture(t)
	f.env.DryRun()

	result, err := publish.Publish(context.Background(), f.options())
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.NotEmpty(t, result.Files)
	assert.Empty(t, f.gh.forks)
	assert.Empty(t, f.repo.commits)
	testutil.AssertNotExists(t, result.PackagePath)
}

func TestPublish_NoToken(t *testing.T) {
	f := newFixture(t)
	opts := f.options()
	opts.GitHub = nil

	_, err := publish.Publish(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitHub))
}
