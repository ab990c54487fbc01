package types

import (
	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/registry"
)

// LinkResult is returned by `ws link`.
type LinkResult struct {
	Spec        string   `json:"spec" yaml:"spec" toml:"spec"`
	Source      string   `json:"source" yaml:"source" toml:"source"`
	Destination string   `json:"destination" yaml:"destination" toml:"destination"`
	Symlink     bool     `json:"symlink" yaml:"symlink" toml:"symlink"`
	Replaced    bool     `json:"replaced" yaml:"replaced" toml:"replaced"`
	Files       []string `json:"files,omitempty" yaml:"files,omitempty" toml:"files,omitempty"`
	Import      string   `json:"import" yaml:"import" toml:"import"`
	DryRun      bool     `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}

// InitResult is returned by `ws init`.
type InitResult struct {
	Path     string             `json:"path" yaml:"path" toml:"path"`
	Created  bool               `json:"created" yaml:"created" toml:"created"`
	Manifest *manifest.Manifest `json:"manifest,omitempty" yaml:"manifest,omitempty" toml:"manifest,omitempty"`
	Files    []string           `json:"files" yaml:"files" toml:"files"`
	DryRun   bool               `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}

// InstalledPackage is one dependency handled by `ws install`.
type InstalledPackage struct {
	Source      string `json:"source" yaml:"source" toml:"source"`
	Spec        string `json:"spec" yaml:"spec" toml:"spec"`
	Destination string `json:"destination" yaml:"destination" toml:"destination"`
	Skipped     bool   `json:"skipped" yaml:"skipped" toml:"skipped"`
}

// InstallResult is returned by `ws install` and `ws add`.
type InstallResult struct {
	Packages []InstalledPackage `json:"packages" yaml:"packages" toml:"packages"`
	DryRun   bool               `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}

// Dependency actions reported in DependenciesResult.
const (
	DependencyAdded   = "added"
	DependencyRemoved = "removed"
)

// DependenciesResult is returned by `ws add` and `ws delete`.
type DependenciesResult struct {
	Action       string         `json:"action" yaml:"action" toml:"action"`
	Dependencies []string       `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	Changed      []string       `json:"changed" yaml:"changed" toml:"changed"`
	Missing      []string       `json:"missing,omitempty" yaml:"missing,omitempty" toml:"missing,omitempty"`
	Install      *InstallResult `json:"install,omitempty" yaml:"install,omitempty" toml:"install,omitempty"`
	DryRun       bool           `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}

// BumpedFile records how many version strings were rewritten in a file.
type BumpedFile struct {
	Path         string `json:"path" yaml:"path" toml:"path"`
	Replacements int    `json:"replacements" yaml:"replacements" toml:"replacements"`
}

// BumpResult is returned by `ws bump`.
type BumpResult struct {
	From   string       `json:"from" yaml:"from" toml:"from"`
	To     string       `json:"to" yaml:"to" toml:"to"`
	Files  []BumpedFile `json:"files" yaml:"files" toml:"files"`
	DryRun bool         `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}

// ImportUpdate is one rewritten #import.
type ImportUpdate struct {
	Package string `json:"package" yaml:"package" toml:"package"`
	From    string `json:"from" yaml:"from" toml:"from"`
	To      string `json:"to" yaml:"to" toml:"to"`
}

// SyncedFile lists the outdated imports of a file.
type SyncedFile struct {
	Path    string         `json:"path" yaml:"path" toml:"path"`
	Updates []ImportUpdate `json:"updates" yaml:"updates" toml:"updates"`
}

// SyncResult is returned by `ws sync`.
type SyncResult struct {
	Files  []SyncedFile `json:"files" yaml:"files" toml:"files"`
	Check  bool         `json:"check" yaml:"check" toml:"check"`
	DryRun bool         `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}

// Outdated returns how many imports were (or would be) rewritten.
func (r *SyncResult) Outdated() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Updates)
	}
	return n
}

// CloneResult is returned by `ws clone`.
type CloneResult struct {
	Spec         string `json:"spec" yaml:"spec" toml:"spec"`
	Source       string `json:"source" yaml:"source" toml:"source"`
	Destination  string `json:"destination,omitempty" yaml:"destination,omitempty" toml:"destination,omitempty"`
	Downloaded   bool   `json:"downloaded" yaml:"downloaded" toml:"downloaded"`
	Symlink      bool   `json:"symlink" yaml:"symlink" toml:"symlink"`
	DownloadOnly bool   `json:"download_only" yaml:"download_only" toml:"download_only"`
	DryRun       bool   `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}

// PublishResult is returned by `ws publish`.
type PublishResult struct {
	Spec        string   `json:"spec" yaml:"spec" toml:"spec"`
	PackagePath string   `json:"package_path" yaml:"package_path" toml:"package_path"`
	Files       []string `json:"files" yaml:"files" toml:"files"`
	Fork        string   `json:"fork,omitempty" yaml:"fork,omitempty" toml:"fork,omitempty"`
	Branch      string   `json:"branch,omitempty" yaml:"branch,omitempty" toml:"branch,omitempty"`
	Commit      string   `json:"commit,omitempty" yaml:"commit,omitempty" toml:"commit,omitempty"`
	PullRequest string   `json:"pull_request,omitempty" yaml:"pull_request,omitempty" toml:"pull_request,omitempty"`
	Prepared    bool     `json:"prepared" yaml:"prepared" toml:"prepared"`
	DryRun      bool     `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}

// MetadataField is one manifest field.
type MetadataField struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Value string `json:"value" yaml:"value" toml:"value"`
	Set   bool   `json:"set" yaml:"set" toml:"set"`
}

// MetadataResult is returned by `ws metadata`.
type MetadataResult struct {
	Fields []MetadataField `json:"fields" yaml:"fields" toml:"fields"`
}

// TestResult is returned by `ws test`.
type TestResult struct {
	Runner string   `json:"runner" yaml:"runner" toml:"runner"`
	Args   []string `json:"args" yaml:"args" toml:"args"`
	Dir    string   `json:"dir" yaml:"dir" toml:"dir"`
	DryRun bool     `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}

// ListResult is returned by `pkg list` and `pkg tree`.
type ListResult struct {
	Trees []*PackageTree `json:"trees" yaml:"trees" toml:"trees"`
	// Tree selects the tree layout in text output.
	Tree bool `json:"-" yaml:"-" toml:"-"`
}

// PathResult is returned by `pkg path`.
type PathResult struct {
	Path string `json:"path" yaml:"path" toml:"path"`
}

// UnlinkResult is returned by `pkg unlink`.
type UnlinkResult struct {
	Target  string `json:"target" yaml:"target" toml:"target"`
	Path    string `json:"path" yaml:"path" toml:"path"`
	Removed bool   `json:"removed" yaml:"removed" toml:"removed"`
	DryRun  bool   `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}

// BulkDeleteFailure is a package `pkg bulk-delete` could not remove.
type BulkDeleteFailure struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Error string `json:"error" yaml:"error" toml:"error"`
}

// BulkDeleteResult is returned by `pkg bulk-delete`.
type BulkDeleteResult struct {
	Total     int                 `json:"total" yaml:"total" toml:"total"`
	Succeeded int                 `json:"succeeded" yaml:"succeeded" toml:"succeeded"`
	Failures  []BulkDeleteFailure `json:"failures,omitempty" yaml:"failures,omitempty" toml:"failures,omitempty"`
}

// GetResult is returned by `pkg get`.
type GetResult struct {
	Packages []registry.RawPackage `json:"packages" yaml:"packages" toml:"packages"`
	Missing  []string              `json:"missing,omitempty" yaml:"missing,omitempty" toml:"missing,omitempty"`
}

// GenConfigResult is returned by `gen-config`.
type GenConfigResult struct {
	Content string `json:"content" yaml:"content" toml:"content"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Written bool   `json:"written" yaml:"written" toml:"written"`
	DryRun  bool   `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
}
