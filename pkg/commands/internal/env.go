package internal

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/typst-community/utpm/pkg/config"
	"github.com/typst-community/utpm/pkg/filesystem"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/registry"
	"github.com/typst-community/utpm/pkg/types"
	"github.com/typst-community/utpm/pkg/ui/prompt"
)

// NewEnv resolves directories from the environment and wires the default
// implementations.
func NewEnv(cfg *config.Config, dryRun bool) (*types.Env, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	p, err := paths.New()
	if err != nil {
		return nil, err
	}

	return &types.Env{
		Paths:    p,
		Config:   cfg,
		FS:       filesystem.NewOS(),
		Prompter: newPrompter(),
		Registry: registry.NewDefault(cfg.Registry, p.CacheDir()),
		DryRun:   dryRun,
	}, nil
}

func newPrompter() types.Prompter {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return prompt.NewTerminal()
	}
	return prompt.Defaults{}
}
