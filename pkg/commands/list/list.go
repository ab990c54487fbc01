package list

import (
	"path/filepath"

	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/store"
	"github.com/typst-community/utpm/pkg/types"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	Env *types.Env
	// All adds the download cache (@preview) to the data directory.
	All bool
	// Include restricts the listing. "preview" selects the cache, any other value is
	// tried as a @local package first and then as a namespace.
	Include []string
	// Tree asks for the tree layout in text output.
	Tree bool
}

// List reads the installed packages.
func List(opts ListOptions) (*types.ListResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "List").Bool("all", opts.All).Strs("include", opts.Include).Msg("Executing command")

	env := opts.Env
	st := store.New(env.FS)
	result := &types.ListResult{Tree: opts.Tree}

	switch {
	case len(opts.Include) > 0:
		for _, name := range opts.Include {
			tree, err := include(env, st, name)
			if err != nil {
				return nil, err
			}
			result.Trees = append(result.Trees, tree)
		}
	case opts.All:
		for _, root := range []string{env.Paths.PackagesDir(), env.Paths.CachePackagesDir()} {
			tree, err := st.Read(root)
			if err != nil {
				return nil, err
			}
			result.Trees = append(result.Trees, tree)
		}
	default:
		tree, err := st.Read(env.Paths.PackagesDir())
		if err != nil {
			return nil, err
		}
		result.Trees = append(result.Trees, tree)
	}

	count := 0
	for _, tree := range result.Trees {
		count += tree.Count()
	}
	log.Info().Str("command", "List").Int("versions", count).Msg("Command finished")
	return result, nil
}

func include(env *types.Env, st *store.Store, name string) (*types.PackageTree, error) {
	if name == paths.PreviewNamespace {
		return st.Read(env.Paths.CachePackagesDir())
	}

	local := env.Paths.NamespaceRoot(types.FallbackNamespace)
	if pkg, err := st.ReadPackage(filepath.Join(local, name), name); err == nil {
		return &types.PackageTree{
			Path: env.Paths.PackagesDir(),
			Namespaces: []types.Namespace{
				{Name: types.FallbackNamespace, Packages: []types.Package{*pkg}},
			},
		}, nil
	}

	ns, err := st.ReadNamespace(env.Paths.NamespaceRoot(name), name)
	if err != nil {
		return nil, err
	}
	return &types.PackageTree{Path: env.Paths.PackagesDir(), Namespaces: []types.Namespace{*ns}}, nil
}

// Path returns the directory holding installed packages.
func Path(env *types.Env) *types.PathResult {
	return &types.PathResult{Path: env.Paths.PackagesDir()}
}
