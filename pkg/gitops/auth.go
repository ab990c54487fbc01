package gitops

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/mitchellh/go-homedir"

	"github.com/typst-community/utpm/pkg/errors"
)

const (
	// EnvKeyPath overrides the SSH private key used for git remotes.
	EnvKeyPath = "UTPM_KEYPATH"
	// EnvGitHubToken authenticates HTTPS remotes and the GitHub API.
	EnvGitHubToken = "UTPM_GITHUB_TOKEN"
)

// Credentials selects how remotes are authenticated.
type Credentials struct {
	KeyPath    string
	Passphrase string
	Token      string
}

// DefaultCredentials resolves credentials from the environment, falling back
// to configured for the key path.
func DefaultCredentials(configured string) Credentials {
	return Credentials{
		KeyPath: KeyPath(configured),
		Token:   os.Getenv(EnvGitHubToken),
	}
}

// KeyPath returns the SSH key to use: UTPM_KEYPATH, then configured, then
// ~/.ssh/id_ed25519 when it exists and ~/.ssh/id_rsa otherwise.
func KeyPath(configured string) string {
	if p := os.Getenv(EnvKeyPath); p != "" {
		return expand(p)
	}
	if configured != "" {
		return expand(configured)
	}

	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	ed := filepath.Join(home, ".ssh", "id_ed25519")
	if info, err := os.Stat(ed); err == nil && !info.IsDir() {
		return ed
	}
	return filepath.Join(home, ".ssh", "id_rsa")
}

func expand(p string) string {
	if expanded, err := homedir.Expand(p); err == nil {
		return expanded
	}
	return p
}

// IsSSH reports whether url designates an SSH remote.
func IsSSH(url string) bool {
	return strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://") ||
		(strings.HasPrefix(url, "git@") && strings.Contains(url, ":"))
}

// Method returns the go-git auth method for url. Nil means anonymous.
func (c Credentials) Method(url string) (transport.AuthMethod, error) {
	switch {
	case IsSSH(url):
		if c.KeyPath == "" {
			return nil, errors.New(errors.ErrGit, "no SSH key configured").WithDetail("url", url)
		}
		keys, err := ssh.NewPublicKeysFromFile("git", c.KeyPath, c.Passphrase)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrGit, "failed to load SSH key %s", c.KeyPath).
				WithDetail("url", url)
		}
		return keys, nil
	case strings.HasPrefix(url, "https://") && c.Token != "":
		return &http.BasicAuth{Username: "x-access-token", Password: c.Token}, nil
	default:
		return nil, nil
	}
}
