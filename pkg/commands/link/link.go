package link

import (
	"github.com/typst-community/utpm/pkg/commands/internal"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/types"
	"github.com/typst-community/utpm/pkg/walker"
)

// LinkOptions defines the options for the Link command.
type LinkOptions struct {
	Env *types.Env
	// Path is the workspace to link. Empty means the current directory.
	Path string
	// Namespace overrides [tool.utpm].namespace and the configured default.
	Namespace string
	// Force replaces an already installed version.
	Force bool
	// NoCopy symlinks the workspace instead of copying it.
	NoCopy bool
	// Ignore selects the ignore files honoured while copying.
	Ignore walker.Options
}

// Link places the workspace into the local package tree so Typst can import it
// as @namespace/name:version.
func Link(opts LinkOptions) (*types.LinkResult, error) {
	log := logging.GetLogger("commands.link")
	log.Debug().Str("command", "Link").Msg("Executing command")

	result, err := internal.LinkWorkspace(opts.Env, internal.LinkRequest{
		Source:    opts.Env.Dir(opts.Path),
		Namespace: opts.Namespace,
		Force:     opts.Force,
		NoCopy:    opts.NoCopy,
		Ignore:    opts.Ignore,
	})
	if err != nil {
		log.Error().Err(err).Msg("Link failed")
		return nil, err
	}

	log.Info().Str("command", "Link").Str("spec", result.Spec).Msg("Command finished")
	return result, nil
}
