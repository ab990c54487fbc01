package genconfig

import (
	"path/filepath"

	"github.com/typst-community/utpm/pkg/config"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/types"
)

// GenConfigOptions holds options for the gen-config command
type GenConfigOptions struct {
	Env *types.Env
	// Write stores the defaults at Path instead of returning them for printing.
	Write bool
	// Path defaults to the user config file.
	Path string
	// Force replaces an existing file.
	Force bool
}

// GenConfig outputs or writes the default configuration
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	log := logging.GetLogger("commands.genconfig")
	log.Debug().Str("command", "GenConfig").Bool("write", opts.Write).Msg("Executing command")

	result := &types.GenConfigResult{
		Content: config.DefaultsContent(),
		DryRun:  opts.Env.DryRun,
	}
	if !opts.Write {
		return result, nil
	}

	target := opts.Path
	if target == "" {
		target = config.UserConfigPath()
	}
	target = paths.ExpandHome(target)
	result.Path = target

	if paths.Exists(target) && !opts.Force {
		return nil, errors.Newf(errors.ErrAlreadyExists, "%s already exists, use --force to replace it", target).
			WithDetail("path", target)
	}
	if opts.Env.DryRun {
		log.Info().Str("path", target).Msg("Dry run, config not written")
		return result, nil
	}

	fs := opts.Env.FS
	if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to create %s", filepath.Dir(target))
	}
	if err := fs.WriteFile(target, []byte(result.Content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to write %s", target)
	}
	result.Written = true

	log.Info().Str("command", "GenConfig").Str("path", target).Msg("Command finished")
	return result, nil
}
