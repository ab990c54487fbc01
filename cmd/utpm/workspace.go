package utpm

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/typst-community/utpm/pkg/commands"
	"github.com/typst-community/utpm/pkg/walker"
)

func newWorkspaceCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   MsgWorkspaceShort,
		GroupID: "core",
	}
	cmd.AddCommand(
		newLinkCmd(g),
		newInitCmd(g),
		newInstallCmd(g),
		newAddCmd(g),
		newDeleteCmd(g),
		newBumpCmd(g),
		newSyncCmd(g),
		newCloneCmd(g),
		newPublishCmd(g),
		newMetadataCmd(g),
		newTestCmd(g),
	)
	return cmd
}

// ignoreFlags registers the ignore-file switches shared by link and publish.
func ignoreFlags(fs *pflag.FlagSet, opts *walker.Options) {
	*opts = walker.DefaultOptions()
	fs.BoolVarP(&opts.Ignore, "ignore", "i", opts.Ignore, MsgFlagIgnore)
	fs.BoolVarP(&opts.GitIgnore, "git-ignore", "g", opts.GitIgnore, MsgFlagGitIgnore)
	fs.BoolVarP(&opts.TypstIgnore, "typst-ignore", "t", opts.TypstIgnore, MsgFlagTypstIgnore)
	fs.BoolVarP(&opts.GitGlobal, "git-global-ignore", "G", opts.GitGlobal, MsgFlagGitGlobal)
	fs.BoolVarP(&opts.GitExclude, "git-exclude", "x", opts.GitExclude, MsgFlagGitExclude)
	fs.StringVarP(&opts.CustomIgnore, "custom-ignore", "c", "", MsgFlagCustomIgnore)
	fs.BoolVar(&opts.Hidden, "hidden", false, MsgFlagHidden)
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func newLinkCmd(g *globals) *cobra.Command {
	var opts commands.LinkOptions
	cmd := &cobra.Command{
		Use:     "link [path]",
		Aliases: []string{"l"},
		Short:   MsgLinkShort,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			opts.Env = env
			opts.Path = optionalArg(args)
			result, err := commands.Link(opts)
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, MsgFlagForce)
	cmd.Flags().BoolVarP(&opts.NoCopy, "no-copy", "n", false, MsgFlagNoCopy)
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "N", "", MsgFlagNamespace)
	ignoreFlags(cmd.Flags(), &opts.Ignore)
	return cmd
}

func newInitCmd(g *globals) *cobra.Command {
	var (
		opts     commands.InitOptions
		cli      bool
		template commands.TemplateOptions
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			opts.Env = env
			opts.Interactive = !cli
			if template.Path != "" || template.Entrypoint != "" || template.Thumbnail != "" {
				opts.Template = &template
			}
			result, err := commands.Init(opts)
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&cli, "cli", "m", false, MsgFlagCli)
	f.BoolVarP(&opts.Force, "force", "f", false, MsgFlagForce)
	f.BoolVarP(&opts.Populate, "populate", "p", false, MsgFlagPopulate)
	f.StringVarP(&opts.Name, "name", "n", "", MsgInitName)
	f.StringVar(&opts.Version, "version", "", MsgInitVersion)
	f.StringVarP(&opts.Entrypoint, "entrypoint", "e", "", MsgInitEntrypoint)
	f.StringSliceVarP(&opts.Authors, "authors", "a", nil, MsgInitAuthors)
	f.StringVarP(&opts.License, "license", "l", "", MsgInitLicense)
	f.StringVarP(&opts.Description, "description", "d", "", MsgInitDescription)
	f.StringVarP(&opts.Repository, "repository", "r", "", MsgInitRepository)
	f.StringVarP(&opts.Homepage, "homepage", "H", "", MsgInitHomepage)
	f.StringSliceVarP(&opts.Keywords, "keywords", "k", nil, MsgInitKeywords)
	f.StringSliceVarP(&opts.Categories, "categories", "C", nil, MsgInitCategories)
	f.StringSliceVarP(&opts.Disciplines, "disciplines", "D", nil, MsgInitDisciplines)
	f.StringVarP(&opts.Compiler, "compiler", "c", "", MsgInitCompiler)
	f.StringSliceVarP(&opts.Exclude, "exclude", "x", nil, MsgInitExclude)
	f.StringVarP(&opts.Namespace, "namespace", "N", "", MsgFlagNamespace)
	f.StringVar(&template.Path, "template-path", "", MsgInitTemplate)
	f.StringVar(&template.Entrypoint, "template-entrypoint", "", MsgInitTemplEntry)
	f.StringVar(&template.Thumbnail, "template-thumbnail", "", MsgInitThumbnail)
	return cmd
}

func newInstallCmd(g *globals) *cobra.Command {
	var opts commands.InstallOptions
	cmd := &cobra.Command{
		Use:     "install [url]",
		Aliases: []string{"i"},
		Short:   MsgInstallShort,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			opts.Env = env
			opts.URL = optionalArg(args)
			result, err := commands.Install(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, MsgFlagForce)
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "N", "", MsgFlagNamespace)
	return cmd
}

func newAddCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "add <uri>...",
		Aliases: []string{"a"},
		Short:   MsgAddShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			result, err := commands.Add(cmd.Context(), commands.AddOptions{Env: env, URIs: args})
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
}

func newDeleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <uri>...",
		Aliases: []string{"d"},
		Short:   MsgDeleteShort,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			result, err := commands.Delete(commands.DeleteOptions{Env: env, URIs: args})
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
}

func newBumpCmd(g *globals) *cobra.Command {
	var include []string
	cmd := &cobra.Command{
		Use:   "bump <version>",
		Short: MsgBumpShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			result, err := commands.Bump(commands.BumpOptions{Env: env, Version: args[0], Include: include})
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().StringSliceVarP(&include, "include", "i", nil, MsgFlagInclude)
	return cmd
}

func newSyncCmd(g *globals) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "sync [file]...",
		Short: MsgSyncShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			result, err := commands.Sync(cmd.Context(), commands.SyncOptions{Env: env, Files: args, Check: check})
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().BoolVarP(&check, "check", "c", false, MsgFlagCheck)
	return cmd
}

func newCloneCmd(g *globals) *cobra.Command {
	var opts commands.CloneOptions
	cmd := &cobra.Command{
		Use:   "clone <package> [path]",
		Short: MsgCloneShort,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			opts.Env = env
			opts.Package = args[0]
			opts.Path = optionalArg(args[1:])
			result, err := commands.Clone(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().BoolVarP(&opts.DownloadOnly, "download-only", "d", false, MsgFlagDownloadOnly)
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, MsgFlagForce)
	cmd.Flags().BoolVarP(&opts.Redownload, "redownload", "r", false, MsgFlagRedownload)
	cmd.Flags().BoolVarP(&opts.Symlink, "symlink", "s", false, MsgFlagSymlink)
	return cmd
}

func newPublishCmd(g *globals) *cobra.Command {
	var opts commands.PublishOptions
	cmd := &cobra.Command{
		Use:     "publish [path]",
		Aliases: []string{"p"},
		Short:   MsgPublishShort,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			opts.Env = env
			opts.Path = optionalArg(args)
			result, err := commands.Publish(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", MsgFlagMessage)
	cmd.Flags().BoolVarP(&opts.PrepareOnly, "prepare-only", "p", false, MsgFlagPrepareOnly)
	ignoreFlags(cmd.Flags(), &opts.Ignore)
	return cmd
}

func newMetadataCmd(g *globals) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:     "metadata [field]",
		Aliases: []string{"m"},
		Short:   MsgMetadataShort,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			result, err := commands.Metadata(commands.MetadataOptions{Env: env, Path: path, Field: optionalArg(args)})
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "", MsgFlagPath)
	return cmd
}

func newTestCmd(g *globals) *cobra.Command {
	var opts commands.TestOptions
	cmd := &cobra.Command{
		Use:     "test [path]",
		Aliases: []string{"t"},
		Short:   MsgTestShort,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			opts.Env = env
			opts.Path = optionalArg(args)
			opts.Verbose = g.verbosity > 0
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			result, err := commands.Test(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().StringVarP(&opts.Pattern, "expression", "e", "", MsgFlagPattern)
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, MsgFlagFailFast)
	cmd.Flags().IntVarP(&opts.Threads, "jobs", "j", 0, MsgFlagThreads)
	return cmd
}
