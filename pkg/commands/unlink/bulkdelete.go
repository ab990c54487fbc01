package unlink

import (
	"strings"

	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/types"
)

// BulkDeleteOptions defines the options for the BulkDelete command.
type BulkDeleteOptions struct {
	Env *types.Env
	// Names are unlink targets. Bare names resolve against Namespace.
	Names []string
	// Namespace defaults to the configured namespace.
	Namespace string
}

// BulkDelete unlinks every name without prompting and reports the ones that failed.
// Failures do not stop the remaining deletions.
func BulkDelete(opts BulkDeleteOptions) (*types.BulkDeleteResult, error) {
	log := logging.GetLogger("commands.bulkdelete")
	log.Debug().Str("command", "BulkDelete").Int("count", len(opts.Names)).Msg("Executing command")

	env := opts.Env
	if opts.Namespace != "" {
		scoped := *env
		cfg := *env.Config
		cfg.Namespace.Default = strings.TrimPrefix(opts.Namespace, "@")
		scoped.Config = &cfg
		env = &scoped
	}

	result := &types.BulkDeleteResult{Total: len(opts.Names)}
	for _, name := range opts.Names {
		if _, err := Unlink(UnlinkOptions{Env: env, Target: name, Yes: true}); err != nil {
			log.Error().Err(err).Str("name", name).Msg("not deleted")
			result.Failures = append(result.Failures, types.BulkDeleteFailure{Name: name, Error: err.Error()})
			continue
		}
		log.Info().Str("name", name).Msg("deleted")
		result.Succeeded++
	}

	log.Info().Str("command", "BulkDelete").Msgf("%d/%d successful", result.Succeeded, result.Total)
	return result, nil
}
