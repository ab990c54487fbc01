package dependencies

import (
	"context"
	"slices"

	"github.com/typst-community/utpm/pkg/commands/install"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/types"
)

// AddOptions defines the options for the Add command.
type AddOptions struct {
	Env *types.Env
	// URIs are git URLs or local directories, stored as written.
	URIs []string
}

// Add appends URIs to the dependency list, skipping duplicates, then installs every
// dependency of the workspace.
func Add(ctx context.Context, opts AddOptions) (*types.DependenciesResult, error) {
	log := logging.GetLogger("commands.dependencies")
	log.Debug().Str("command", "Add").Strs("uris", opts.URIs).Msg("Executing command")

	dir := opts.Env.Paths.CurrentDir()
	m, err := manifest.Load(dir)
	if err != nil {
		return nil, err
	}
	if len(opts.URIs) == 0 {
		return nil, errors.New(errors.ErrNoURIFound, "")
	}

	extra, err := m.Extra()
	if err != nil {
		return nil, err
	}

	result := &types.DependenciesResult{Action: types.DependencyAdded, Changed: []string{}, DryRun: opts.Env.DryRun}
	for _, uri := range opts.URIs {
		if slices.Contains(extra.Dependencies, uri) {
			log.Trace().Str("uri", uri).Msg("dependency already in the manifest, skipping")
			continue
		}
		extra.Dependencies = append(extra.Dependencies, uri)
		result.Changed = append(result.Changed, uri)
	}
	result.Dependencies = extra.Dependencies

	if !opts.Env.DryRun {
		if err := m.SetExtra(extra); err != nil {
			return nil, err
		}
		if err := manifest.Write(dir, m); err != nil {
			return nil, err
		}
	}

	installed, err := install.Install(ctx, install.InstallOptions{Env: opts.Env})
	result.Install = installed
	if err != nil {
		return result, err
	}

	log.Info().Str("command", "Add").Int("added", len(result.Changed)).Msg("Command finished")
	return result, nil
}
