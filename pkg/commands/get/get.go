// Package get shows registry entries for @preview packages.
package get

import (
	"context"
	"strings"

	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/registry"
	"github.com/typst-community/utpm/pkg/types"
)

// GetOptions defines the options for the Get command.
type GetOptions struct {
	Env *types.Env
	// Packages are name or name:version. Empty lists the whole index.
	Packages []string
	// Refresh ignores the cached index.
	Refresh bool
}

// Get looks packages up in the registry index. Unknown names are reported in
// Missing instead of failing the command.
func Get(ctx context.Context, opts GetOptions) (*types.GetResult, error) {
	log := logging.GetLogger("commands.get")
	log.Debug().Str("command", "Get").Strs("packages", opts.Packages).Msg("Executing command")

	if opts.Refresh {
		if err := opts.Env.Registry.ClearCache(); err != nil {
			return nil, err
		}
	}

	index, err := opts.Env.Registry.Index(ctx)
	if err != nil {
		return nil, err
	}

	result := &types.GetResult{Packages: []registry.RawPackage{}}
	if len(opts.Packages) == 0 {
		result.Packages = index
		log.Info().Str("command", "Get").Int("packages", len(index)).Msg("Command finished")
		return result, nil
	}

	lookup := registry.BuildLookup(index)
	for _, name := range opts.Packages {
		key := strings.TrimPrefix(strings.TrimSpace(name), "@preview/")
		p, ok := lookup[key]
		if !ok {
			log.Warn().Str("package", name).Msg("package not found in the registry")
			result.Missing = append(result.Missing, name)
			continue
		}
		result.Packages = append(result.Packages, p)
	}

	log.Info().Str("command", "Get").Int("packages", len(result.Packages)).Int("missing", len(result.Missing)).Msg("Command finished")
	return result, nil
}
