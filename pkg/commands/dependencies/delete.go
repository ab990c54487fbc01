package dependencies

import (
	"slices"

	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/types"
)

// DeleteOptions defines the options for the Delete command.
type DeleteOptions struct {
	Env  *types.Env
	URIs []string
}

// Delete removes URIs from the dependency list. URIs that are not listed are
// reported in Missing. Installed packages are left alone.
func Delete(opts DeleteOptions) (*types.DependenciesResult, error) {
	log := logging.GetLogger("commands.dependencies")
	log.Debug().Str("command", "Delete").Strs("uris", opts.URIs).Msg("Executing command")

	dir := opts.Env.Paths.CurrentDir()
	m, err := manifest.Load(dir)
	if err != nil {
		return nil, err
	}
	extra, err := m.Extra()
	if err != nil {
		return nil, err
	}

	result := &types.DependenciesResult{Action: types.DependencyRemoved, Changed: []string{}, DryRun: opts.Env.DryRun}
	for _, uri := range opts.URIs {
		idx := slices.Index(extra.Dependencies, uri)
		if idx < 0 {
			log.Info().Str("uri", uri).Msg("Can't remove (not found)")
			result.Missing = append(result.Missing, uri)
			continue
		}
		extra.Dependencies = slices.Delete(extra.Dependencies, idx, idx+1)
		result.Changed = append(result.Changed, uri)
	}
	result.Dependencies = extra.Dependencies

	if len(result.Changed) == 0 || opts.Env.DryRun {
		return result, nil
	}

	if err := m.SetExtra(extra); err != nil {
		return nil, err
	}
	if err := manifest.Write(dir, m); err != nil {
		return nil, err
	}

	log.Info().Str("command", "Delete").Int("removed", len(result.Changed)).Msg("Command finished")
	return result, nil
}
