// Package commands provides high-level command implementations for utpm.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the package store, registry and git layers.
//
// Each command is implemented in its own subdirectory:
//   - link/         - Link command (ws link)
//   - initialize/   - Init command (ws init)
//   - install/      - Install command (ws install)
//   - dependencies/ - Add and Delete commands (ws add, ws delete)
//   - bump/         - Bump command
//   - syncer/       - Sync command
//   - clone/        - Clone command
//   - publish/      - Publish command
//   - metadata/     - Metadata command
//   - runtests/     - Test command (Tytanic runner)
//   - list/         - List, Tree and Path commands
//   - unlink/       - Unlink and BulkDelete commands
//   - get/          - Get command
//   - genconfig/    - GenConfig command
//   - internal/     - Shared environment and link logic
//
// This file re-exports the command functions so the CLI depends on one package.
package commands

import (
	"context"

	"github.com/typst-community/utpm/pkg/commands/bump"
	"github.com/typst-community/utpm/pkg/commands/clone"
	"github.com/typst-community/utpm/pkg/commands/dependencies"
	"github.com/typst-community/utpm/pkg/commands/genconfig"
	"github.com/typst-community/utpm/pkg/commands/get"
	"github.com/typst-community/utpm/pkg/commands/initialize"
	"github.com/typst-community/utpm/pkg/commands/install"
	"github.com/typst-community/utpm/pkg/commands/internal"
	"github.com/typst-community/utpm/pkg/commands/link"
	"github.com/typst-community/utpm/pkg/commands/list"
	"github.com/typst-community/utpm/pkg/commands/metadata"
	"github.com/typst-community/utpm/pkg/commands/publish"
	"github.com/typst-community/utpm/pkg/commands/runtests"
	"github.com/typst-community/utpm/pkg/commands/syncer"
	"github.com/typst-community/utpm/pkg/commands/unlink"
	"github.com/typst-community/utpm/pkg/config"
	"github.com/typst-community/utpm/pkg/types"
)

// NewEnv builds the environment shared by every command from the loaded config.
func NewEnv(cfg *config.Config, dryRun bool) (*types.Env, error) {
	return internal.NewEnv(cfg, dryRun)
}

// Link copies or symlinks the current workspace into the local package tree.
type LinkOptions = link.LinkOptions

func Link(opts LinkOptions) (*types.LinkResult, error) {
	return link.Link(opts)
}

// Init creates typst.toml, interactively or from flags.
type InitOptions = initialize.InitOptions

// TemplateOptions fills the [template] table written by Init.
type TemplateOptions = initialize.TemplateOptions

func Init(opts InitOptions) (*types.InitResult, error) {
	return initialize.Init(opts)
}

// Install installs a git or local package, or the workspace dependencies.
type InstallOptions = install.InstallOptions

func Install(ctx context.Context, opts InstallOptions) (*types.InstallResult, error) {
	return install.Install(ctx, opts)
}

// Add records dependencies in [tool.utpm] and installs them.
type AddOptions = dependencies.AddOptions

func Add(ctx context.Context, opts AddOptions) (*types.DependenciesResult, error) {
	return dependencies.Add(ctx, opts)
}

// Delete removes dependencies from [tool.utpm].
type DeleteOptions = dependencies.DeleteOptions

func Delete(opts DeleteOptions) (*types.DependenciesResult, error) {
	return dependencies.Delete(opts)
}

// Bump sets a new package version in typst.toml and included files.
type BumpOptions = bump.BumpOptions

func Bump(opts BumpOptions) (*types.BumpResult, error) {
	return bump.Bump(opts)
}

// Sync rewrites versioned imports to the newest available version.
type SyncOptions = syncer.SyncOptions

func Sync(ctx context.Context, opts SyncOptions) (*types.SyncResult, error) {
	return syncer.Sync(ctx, opts)
}

// Clone copies a package, usually a template, into a directory.
type CloneOptions = clone.CloneOptions

func Clone(ctx context.Context, opts CloneOptions) (*types.CloneResult, error) {
	return clone.Clone(ctx, opts)
}

// Publish submits the workspace to typst/packages.
type PublishOptions = publish.PublishOptions

func Publish(ctx context.Context, opts PublishOptions) (*types.PublishResult, error) {
	return publish.Publish(ctx, opts)
}

// Metadata reads fields from typst.toml.
type MetadataOptions = metadata.MetadataOptions

func Metadata(opts MetadataOptions) (*types.MetadataResult, error) {
	return metadata.Metadata(opts)
}

// Test runs the package tests through Tytanic.
type TestOptions = runtests.TestOptions

func Test(ctx context.Context, opts TestOptions) (*types.TestResult, error) {
	return runtests.Test(ctx, opts)
}

// List reads the installed package trees.
type ListOptions = list.ListOptions

func List(opts ListOptions) (*types.ListResult, error) {
	return list.List(opts)
}

// Path returns the local packages directory.
func Path(env *types.Env) *types.PathResult {
	return list.Path(env)
}

// Unlink removes a namespace, package or version.
type UnlinkOptions = unlink.UnlinkOptions

func Unlink(opts UnlinkOptions) (*types.UnlinkResult, error) {
	return unlink.Unlink(opts)
}

// BulkDelete unlinks several packages without prompting.
type BulkDeleteOptions = unlink.BulkDeleteOptions

func BulkDelete(opts BulkDeleteOptions) (*types.BulkDeleteResult, error) {
	return unlink.BulkDelete(opts)
}

// Get shows registry entries.
type GetOptions = get.GetOptions

func Get(ctx context.Context, opts GetOptions) (*types.GetResult, error) {
	return get.Get(ctx, opts)
}

// GenConfig prints or writes the default configuration.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
