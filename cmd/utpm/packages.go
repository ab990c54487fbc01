package utpm

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/typst-community/utpm/pkg/commands"
)

func newPackagesCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "packages",
		Aliases: []string{"pkg"},
		Short:   MsgPackagesShort,
		GroupID: "core",
	}
	cmd.AddCommand(
		newListCmd(g, "tree", "t", MsgTreeShort, true),
		newListCmd(g, "list", "l", MsgListShort, false),
		newPathCmd(g),
		newUnlinkCmd(g),
		newBulkDeleteCmd(g),
		newGetCmd(g),
	)
	return cmd
}

// newListCmd builds tree and list, which differ only in their text layout.
func newListCmd(g *globals, use, alias, short string, tree bool) *cobra.Command {
	opts := commands.ListOptions{Tree: tree}
	cmd := &cobra.Command{
		Use:     use,
		Aliases: []string{alias},
		Short:   short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			opts.Env = env
			result, err := commands.List(opts)
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, MsgFlagAll)
	cmd.Flags().StringSliceVarP(&opts.Include, "include", "i", nil, MsgFlagIncludeList)
	return cmd
}

func newPathCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "path",
		Aliases: []string{"p"},
		Short:   MsgPathShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			return g.render(cmd, commands.Path(env))
		},
	}
}

func newUnlinkCmd(g *globals) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "unlink <target>",
		Aliases: []string{"u"},
		Short:   MsgUnlinkShort,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			result, err := commands.Unlink(commands.UnlinkOptions{Env: env, Target: args[0], Yes: yes})
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	return cmd
}

func newBulkDeleteCmd(g *globals) *cobra.Command {
	var namespace string
	cmd := &cobra.Command{
		Use:     "bulk-delete <name>[,<name>...]",
		Aliases: []string{"bd"},
		Short:   MsgBulkDeleteShort,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			var names []string
			for _, arg := range args {
				for _, name := range strings.Split(arg, ",") {
					if name = strings.TrimSpace(name); name != "" {
						names = append(names, name)
					}
				}
			}
			result, err := commands.BulkDelete(commands.BulkDeleteOptions{Env: env, Names: names, Namespace: namespace})
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", MsgFlagNamespace)
	return cmd
}

func newGetCmd(g *globals) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:     "get [package]...",
		Aliases: []string{"g"},
		Short:   MsgGetShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			result, err := commands.Get(cmd.Context(), commands.GetOptions{Env: env, Packages: args, Refresh: refresh})
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, MsgFlagRefresh)
	return cmd
}
