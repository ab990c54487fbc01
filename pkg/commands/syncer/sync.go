package syncer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/registry"
	"github.com/typst-community/utpm/pkg/spec"
	"github.com/typst-community/utpm/pkg/store"
	"github.com/typst-community/utpm/pkg/types"
	"github.com/typst-community/utpm/pkg/walker"
)

// SyncOptions defines the options for the Sync command.
type SyncOptions struct {
	Env *types.Env
	// Files limits the rewrite to these files. Empty walks the current directory.
	Files []string
	// Check reports outdated imports without rewriting them.
	Check bool
}

// Sync rewrites every versioned #import to the newest known version. @preview
// packages are resolved against the registry index, other namespaces against the
// highest installed version.
func Sync(ctx context.Context, opts SyncOptions) (*types.SyncResult, error) {
	log := logging.GetLogger("commands.sync")
	log.Debug().Str("command", "Sync").Bool("check", opts.Check).Msg("Executing command")
	defer logging.LogOperationStart(log, "sync")()

	files, err := targets(opts)
	if err != nil {
		return nil, err
	}

	r := &resolver{ctx: ctx, env: opts.Env, store: store.New(opts.Env.FS), cache: map[string]string{}}
	result := &types.SyncResult{Files: []types.SyncedFile{}, Check: opts.Check, DryRun: opts.Env.DryRun}
	write := !opts.Check && !opts.Env.DryRun

	for _, file := range files {
		synced, err := syncFile(opts.Env, r, file, write)
		if err != nil {
			return nil, err
		}
		if synced != nil {
			result.Files = append(result.Files, *synced)
		}
	}

	log.Info().Str("command", "Sync").Int("outdated", result.Outdated()).Msg("Command finished")
	return result, nil
}

func targets(opts SyncOptions) ([]string, error) {
	if len(opts.Files) > 0 {
		out := make([]string, len(opts.Files))
		for i, f := range opts.Files {
			out[i] = opts.Env.Dir(f)
		}
		return out, nil
	}

	root := opts.Env.Paths.CurrentDir()
	entries, err := walker.Walk(root, walker.DefaultOptions())
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir {
			out = append(out, filepath.Join(root, e.Path))
		}
	}
	return out, nil
}

func syncFile(env *types.Env, r *resolver, path string, write bool) (*types.SyncedFile, error) {
	log := logging.GetLogger("commands.sync").With().Str("file", path).Logger()

	data, err := env.FS.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", path)
	}
	if !utf8.Valid(data) {
		log.Warn().Msg("Skipping non-UTF-8 file")
		return nil, nil
	}

	src := string(data)
	imports := spec.FindImports(src)
	if len(imports) == 0 {
		return nil, nil
	}
	log.Debug().Int("imports", len(imports)).Msg("Found imports")

	synced := &types.SyncedFile{Path: display(env, path)}
	out := src
	// Rewrite back to front so earlier offsets stay valid.
	for i := len(imports) - 1; i >= 0; i-- {
		imp := imports[i]
		latest, err := r.latest(imp.Spec)
		if err != nil {
			return nil, err
		}
		if latest == imp.Version {
			continue
		}

		next := imp.Spec
		next.Version = latest
		replacement := fmt.Sprintf("#import %q /* From %s */", next.String(), imp.Version)
		out = out[:imp.Start] + replacement + out[imp.End:]

		synced.Updates = append([]types.ImportUpdate{{
			Package: imp.Namespace + "/" + imp.Name,
			From:    imp.Version,
			To:      latest,
		}}, synced.Updates...)
	}

	if len(synced.Updates) == 0 {
		return nil, nil
	}
	if write {
		if err := env.FS.WriteFile(path, []byte(out), 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to write %s", path)
		}
		log.Info().Int("updates", len(synced.Updates)).Msg("File synced")
	}
	return synced, nil
}

func display(env *types.Env, path string) string {
	rel, err := filepath.Rel(env.Paths.CurrentDir(), path)
	if err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}

// resolver finds the newest version of a package, memoising answers.
type resolver struct {
	ctx    context.Context
	env    *types.Env
	store  *store.Store
	lookup map[string]registry.RawPackage
	cache  map[string]string
}

func (r *resolver) latest(s spec.Spec) (string, error) {
	key := s.Namespace + "/" + s.Name
	if v, ok := r.cache[key]; ok {
		return v, nil
	}

	var version string
	if s.Namespace == paths.PreviewNamespace {
		if r.lookup == nil {
			lookup, err := r.env.Registry.Lookup(r.ctx)
			if err != nil {
				return "", err
			}
			r.lookup = lookup
		}
		pkg, ok := r.lookup[s.Name]
		if !ok {
			return "", errors.Newf(errors.ErrPackageNotExist, "Can't find the package %s", key)
		}
		version = pkg.Version
	} else {
		v, err := r.store.Latest(filepath.Join(r.env.Paths.NamespaceRoot(s.Namespace), s.Name))
		if err != nil || v == "" {
			return "", errors.Newf(errors.ErrPackageNotExist, "Can't find the package %s", key)
		}
		version = v
	}

	r.cache[key] = version
	return version, nil
}
