// Package unlink removes installed namespaces, packages and versions.
package unlink

import (
	"fmt"
	"path/filepath"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/spec"
	"github.com/typst-community/utpm/pkg/store"
	"github.com/typst-community/utpm/pkg/types"
)

// ConfirmQuestion is asked before anything is removed.
const ConfirmQuestion = "Are you sure to delete this? This is irreversible."

// UnlinkOptions defines the options for the Unlink command.
type UnlinkOptions struct {
	Env *types.Env
	// Target is @ns, @ns/name, @ns/name:version, name or name:version.
	Target string
	// Yes skips the confirmation prompt.
	Yes bool
}

// Unlink removes what Target designates from the package tree.
func Unlink(opts UnlinkOptions) (*types.UnlinkResult, error) {
	log := logging.GetLogger("commands.unlink")
	log.Debug().Str("command", "Unlink").Str("target", opts.Target).Msg("Executing command")

	env := opts.Env
	target, err := spec.ParseTarget(opts.Target, env.DefaultNamespace())
	if err != nil {
		return nil, err
	}

	result := &types.UnlinkResult{
		Target: describe(target),
		Path:   targetPath(env, target),
		DryRun: env.DryRun,
	}

	st := store.New(env.FS)
	if !st.Exists(result.Path) {
		return nil, errors.Newf(errors.ErrNotFound, "%s is not installed", result.Target).WithDetail("path", result.Path)
	}

	if !opts.Yes {
		ok, err := env.Prompter.Confirm(fmt.Sprintf("%s You want to erase %s", ConfirmQuestion, result.Target), false)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Info().Str("target", result.Target).Msg("unlink declined")
			return result, nil
		}
	}

	if env.DryRun {
		log.Info().Str("path", result.Path).Msg("dry-run, nothing removed")
		return result, nil
	}

	if err := st.Remove(result.Path); err != nil {
		return nil, err
	}
	result.Removed = true

	log.Info().Str("command", "Unlink").Str("path", result.Path).Msg("Command finished")
	return result, nil
}

func describe(t spec.Target) string {
	switch t.Kind {
	case spec.TargetNamespace:
		return "@" + t.Spec.Namespace
	case spec.TargetPackage:
		return "@" + t.Spec.Namespace + "/" + t.Spec.Name
	}
	return t.Spec.String()
}

func targetPath(env *types.Env, t spec.Target) string {
	root := env.Paths.NamespaceRoot(t.Spec.Namespace)
	switch t.Kind {
	case spec.TargetNamespace:
		return root
	case spec.TargetPackage:
		return filepath.Join(root, t.Spec.Name)
	}
	return env.Paths.PackageDir(t.Spec.Namespace, t.Spec.Name, t.Spec.Version)
}
