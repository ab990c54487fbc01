// Package gitops runs the handful of git operations utpm needs (clone,
// fast-forward pull, commit everything, push) in-process through go-git, so
// no git binary has to be installed.
//
// Authentication follows what users already have on disk: SSH remotes use the
// key at UTPM_KEYPATH, git.key_path, ~/.ssh/id_ed25519 or ~/.ssh/id_rsa (first
// one found), HTTPS remotes use UTPM_GITHUB_TOKEN when it is set.
package gitops
