package utpm

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/typst-community/utpm/docs"
	"github.com/typst-community/utpm/pkg/commands"
	"github.com/typst-community/utpm/pkg/ui/guide"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "generate <bash|zsh|fish|powershell>",
		Aliases:   []string{"gen"},
		Short:     MsgGenerateShort,
		Long:      MsgGenerateLong,
		GroupID:   "misc",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf(MsgUnsupportedShell, args[0])
			}
		},
	}
}

func newGuideCmd(g *globals) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:     "guide [topic]",
		Short:   MsgGuideShort,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			gd, err := guide.Load(docs.Guide)
			if err != nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return gd.Topics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			gd, err := guide.Load(docs.Guide)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if list {
				fmt.Fprintln(out, strings.Join(gd.Topics(), "\n"))
				return nil
			}

			content, err := gd.Topic(optionalArg(args))
			if err != nil {
				return err
			}
			var renderer guide.Renderer = guide.PlainRenderer{}
			if g.format == "text" && isTerminal() {
				renderer = guide.GlamourRenderer{}
			}
			fmt.Fprint(out, renderer.Render(content))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, MsgFlagList)
	return cmd
}

func newGenConfigCmd(g *globals) *cobra.Command {
	var opts commands.GenConfigOptions
	cmd := &cobra.Command{
		Use:     "gen-config [path]",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := g.env()
			if err != nil {
				return err
			}
			opts.Env = env
			opts.Path = optionalArg(args)
			result, err := commands.GenConfig(opts)
			if err != nil {
				return err
			}
			return g.render(cmd, result)
		},
	}
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, MsgFlagForce)
	return cmd
}
